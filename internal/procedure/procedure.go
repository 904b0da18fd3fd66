// Package procedure implements the remote-procedure pipeline: ordered
// middleware steps composed around a typed handler, threaded through a
// per-request context.
//
// A Procedure is assembled once at startup from Steps that declare which
// context fields they require and provide; composition fails fast when a
// step's requirement is not satisfied by an earlier step. At request time
// the chain runs strictly sequentially and any step may short-circuit with
// an *errs.HTTPError, skipping everything downstream.
package procedure

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/paulloo/relivator/internal/errs"
	"github.com/paulloo/relivator/internal/model"
)

// Field names a slot of the per-request Context that steps populate and
// depend on.
type Field string

const (
	// FieldSession is the resolved authentication session (possibly
	// anonymous). Provided by the base step.
	FieldSession Field = "session"

	// FieldUser is the authenticated caller. Provided by the auth step.
	FieldUser Field = "user"

	// FieldBoard is the ownership-checked target board. Provided by the
	// board-scope step.
	FieldBoard Field = "board"
)

// Context is the per-request bag threaded through a procedure chain. It is
// constructed explicitly once per request by the HTTP adapter and lives for
// exactly that request; nothing is memoized across requests.
type Context struct {
	// Logger is the request-scoped logger, already tagged with the
	// procedure name and request correlation fields.
	Logger *zerolog.Logger

	session         *model.Session
	sessionResolved bool
	user            *model.User
	board           *model.Board

	provided map[Field]struct{}
}

// NewContext creates an empty per-request context around the given logger.
func NewContext(logger *zerolog.Logger) *Context {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Context{
		Logger:   logger,
		provided: make(map[Field]struct{}),
	}
}

// Provide marks a field as populated. Steps call this (usually through the
// typed setters) after filling their declared Provides.
func (pc *Context) Provide(f Field) {
	pc.provided[f] = struct{}{}
}

// Provided reports whether a field has been populated.
func (pc *Context) Provided(f Field) bool {
	_, ok := pc.provided[f]
	return ok
}

// SetSession records the resolved session. A nil session is a valid
// resolution (anonymous request): the field counts as provided either way,
// and SessionResolved flips so the resolution never runs twice.
func (pc *Context) SetSession(s *model.Session) {
	pc.session = s
	pc.sessionResolved = true
	pc.Provide(FieldSession)
}

// Session returns the resolved session, or nil for anonymous requests.
func (pc *Context) Session() *model.Session {
	return pc.session
}

// SessionResolved reports whether session resolution already happened.
func (pc *Context) SessionResolved() bool {
	return pc.sessionResolved
}

// SetUser records the authenticated caller.
func (pc *Context) SetUser(u *model.User) {
	pc.user = u
	pc.Provide(FieldUser)
}

// User returns the authenticated caller, or nil before the auth step ran.
func (pc *Context) User() *model.User {
	return pc.user
}

// SetBoard records the ownership-checked target board.
func (pc *Context) SetBoard(b *model.Board) {
	pc.board = b
	pc.Provide(FieldBoard)
}

// Board returns the target board, or nil before the board-scope step ran.
func (pc *Context) Board() *model.Board {
	return pc.board
}

// Handler is the downstream continuation a step delegates to: either the
// next step in the chain or the terminal typed handler.
type Handler func(ctx context.Context, pc *Context, input any) (any, error)

// Step is one named unit of a procedure chain.
//
// Requires lists the context fields the step reads; Provides lists the
// fields it populates before delegating. New checks these declarations at
// composition time, so a misordered chain fails at startup instead of
// surfacing as a nil dereference under load.
type Step struct {
	Name     string
	Requires []Field
	Provides []Field

	// Run executes the step. It may short-circuit by returning without
	// calling next, or wrap next (timing, caching).
	Run func(ctx context.Context, pc *Context, input any, next Handler) (any, error)
}

// Meta identifies a procedure and carries the routing information the HTTP
// adapter registers it under.
type Meta struct {
	Name   string
	Method string
	Path   string
}

// Procedure is an immutable ordered step chain plus metadata. Build it once
// at startup with New and reuse it across requests.
type Procedure struct {
	meta  Meta
	steps []Step
}

// New composes steps into a Procedure, verifying that every field a step
// requires is provided by some earlier step in the chain.
func New(meta Meta, steps ...Step) (*Procedure, error) {
	available := make(map[Field]struct{})

	for _, step := range steps {
		for _, f := range step.Requires {
			if _, ok := available[f]; !ok {
				return nil, fmt.Errorf(
					"procedure %s: step %q requires field %q, which no earlier step provides",
					meta.Name, step.Name, f,
				)
			}
		}
		for _, f := range step.Provides {
			available[f] = struct{}{}
		}
	}

	return &Procedure{
		meta:  meta,
		steps: steps,
	}, nil
}

// Meta returns the procedure's metadata.
func (p *Procedure) Meta() Meta {
	return p.meta
}

// Invoke runs the chain against a fresh per-request context, ending in the
// terminal handler. Steps execute in declaration order; the first error
// aborts everything downstream of it.
func (p *Procedure) Invoke(ctx context.Context, pc *Context, input any, terminal Handler) (any, error) {
	next := terminal

	// Wrap right-to-left so the first declared step ends up outermost.
	for i := len(p.steps) - 1; i >= 0; i-- {
		step := p.steps[i]
		downstream := next

		next = func(ctx context.Context, pc *Context, input any) (any, error) {
			// The composition-time check guarantees ordering; this guards
			// against a providing step that returned without populating its
			// declared field.
			for _, f := range step.Requires {
				if !pc.Provided(f) {
					pc.Logger.Error().
						Str("step", step.Name).
						Str("field", string(f)).
						Msg("required context field missing at runtime")
					return nil, errs.NewInternalServerError()
				}
			}

			return step.Run(ctx, pc, input, downstream)
		}
	}

	return next(ctx, pc, input)
}
