package procedure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/rs/zerolog"

	"github.com/paulloo/relivator/internal/config"
	"github.com/paulloo/relivator/internal/errs"
	"github.com/paulloo/relivator/internal/model"
)

// SessionResolver produces the session for the current request, or nil when
// the request is anonymous. The base step calls it at most once per request.
type SessionResolver interface {
	Resolve(ctx context.Context) (*model.Session, error)
}

// BoardFinder is the ownership-filtered lookup the board-scope step runs.
// A (nil, nil) return means no board matches the id AND owner pair.
type BoardFinder interface {
	FindByIDAndOwner(ctx context.Context, boardID, ownerID string) (*model.Board, error)
}

// TagCache is the get-or-compute surface the cache step wraps downstream
// execution in. *cache.Cache satisfies it.
type TagCache interface {
	GetOrCompute(ctx context.Context, tag, userID, key string, ttl time.Duration, compute func() (any, error)) (json.RawMessage, bool, error)
}

// BoardInput is implemented by request payloads of board-scoped procedures
// to declare which board the request targets.
type BoardInput interface {
	TargetBoardID() string
}

// CacheKeyer lets a request payload contribute to the cache entry key.
// Payloads without it share one entry per (tag, user).
type CacheKeyer interface {
	CacheKey() string
}

// Builder assembles procedures from steps, holding the collaborators the
// steps close over. One Builder serves the whole application; procedures
// built from it are constructed at startup and shared across requests.
type Builder struct {
	cfg      *config.Config
	logger   *zerolog.Logger
	sessions SessionResolver
	boards   BoardFinder
	cache    TagCache
}

// NewBuilder constructs a Builder.
func NewBuilder(cfg *config.Config, logger *zerolog.Logger, sessions SessionResolver, boards BoardFinder, cache TagCache) *Builder {
	return &Builder{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		boards:   boards,
		cache:    cache,
	}
}

// Public is the minimal variant: base step only.
func (b *Builder) Public(meta Meta) *Procedure {
	return must(New(meta, b.baseStep()))
}

// Protected requires an authenticated caller.
func (b *Builder) Protected(meta Meta) *Procedure {
	return must(New(meta, b.baseStep(), b.authStep()))
}

// BoardScoped requires an authenticated caller who owns the target board.
func (b *Builder) BoardScoped(meta Meta) *Procedure {
	return must(New(meta, b.baseStep(), b.authStep(), b.boardStep()))
}

// Cached wraps an authenticated procedure in the tag-addressable cache.
// ttl <= 0 falls back to the configured default.
func (b *Builder) Cached(meta Meta, tag string, ttl time.Duration) *Procedure {
	if ttl <= 0 {
		ttl = time.Duration(b.cfg.Cache.TTLSeconds) * time.Second
	}
	return must(New(meta, b.baseStep(), b.authStep(), b.cacheStep(tag, ttl)))
}

// must panics on a composition error. Procedures are built at startup from
// static step lists, so a failure here is a programming error that should
// stop the process before it serves traffic.
func must(p *Procedure, err error) *Procedure {
	if err != nil {
		panic(err)
	}
	return p
}

// baseStep resolves the session (exactly once per request), injects the
// dev-only artificial latency, and times and logs the downstream call.
// Logging is best-effort: it never changes the result.
func (b *Builder) baseStep() Step {
	return Step{
		Name:     "base",
		Provides: []Field{FieldSession},
		Run: func(ctx context.Context, pc *Context, input any, next Handler) (any, error) {
			if !pc.SessionResolved() {
				session, err := b.sessions.Resolve(ctx)
				if err != nil {
					// A resolver failure degrades to anonymous; the auth step
					// rejects the request if the procedure needs a session.
					pc.Logger.Warn().Err(err).Msg("session resolution failed")
					session = nil
				}
				pc.SetSession(session)
			}

			if b.cfg.IsLocal() && b.cfg.Server.ArtificialLatencyMS > 0 {
				time.Sleep(time.Duration(b.cfg.Server.ArtificialLatencyMS) * time.Millisecond)
			}

			start := time.Now()
			result, err := next(ctx, pc, input)
			elapsed := time.Since(start)

			if err != nil {
				pc.Logger.Warn().Err(err).Dur("duration", elapsed).Msg("procedure failed")
			} else {
				pc.Logger.Info().Dur("duration", elapsed).Msg("procedure ok")
			}

			return result, err
		},
	}
}

// authStep rejects anonymous requests with UNAUTHORIZED before anything
// downstream runs, and promotes the session to an authenticated user.
func (b *Builder) authStep() Step {
	return Step{
		Name:     "auth",
		Requires: []Field{FieldSession},
		Provides: []Field{FieldUser},
		Run: func(ctx context.Context, pc *Context, input any, next Handler) (any, error) {
			session := pc.Session()
			if session == nil {
				return nil, errs.NewUnauthorizedError("You must be signed in to perform this action", false)
			}

			pc.SetUser(&model.User{
				ID:          session.UserID,
				Role:        session.Role,
				Permissions: session.Permissions,
			})

			return next(ctx, pc, input)
		},
	}
}

// boardStep looks up the target board filtered by BOTH its id and the
// current user's ownership, and rejects with FORBIDDEN when nothing
// matches. Whether the board does not exist or belongs to someone else is
// deliberately indistinguishable to the caller.
func (b *Builder) boardStep() Step {
	return Step{
		Name:     "board_scope",
		Requires: []Field{FieldUser},
		Provides: []Field{FieldBoard},
		Run: func(ctx context.Context, pc *Context, input any, next Handler) (any, error) {
			in, ok := input.(BoardInput)
			if !ok {
				pc.Logger.Error().
					Str("step", "board_scope").
					Msg("input does not declare a target board id")
				return nil, errs.NewInternalServerError()
			}

			board, err := b.boards.FindByIDAndOwner(ctx, in.TargetBoardID(), pc.User().ID)
			if err != nil {
				return nil, err
			}
			if board == nil {
				return nil, errs.NewForbiddenError("You do not have access to this board", false)
			}

			pc.SetBoard(board)

			return next(ctx, pc, input)
		},
	}
}

// cacheStep wraps downstream execution in the tag-addressable cache, keyed
// by (tag, user identity, input key). On a hit downstream never runs; on a
// miss it runs exactly once and the result is stored under the tag.
//
// Any failure inside the wrapped execution surfaces as a plain
// INTERNAL_SERVER_ERROR. The original cause is logged here before being
// discarded.
func (b *Builder) cacheStep(tag string, ttl time.Duration) Step {
	return Step{
		Name:     "cache",
		Requires: []Field{FieldUser},
		Run: func(ctx context.Context, pc *Context, input any, next Handler) (any, error) {
			key := ""
			if keyer, ok := input.(CacheKeyer); ok {
				key = keyer.CacheKey()
			}

			result, hit, err := b.cache.GetOrCompute(ctx, tag, pc.User().ID, key, ttl, func() (any, error) {
				return next(ctx, pc, input)
			})
			if err != nil {
				pc.Logger.Error().Err(err).
					Str("cache_tag", tag).
					Str("cache_key", key).
					Msg("cached procedure failed")
				return nil, errs.NewInternalServerError()
			}

			pc.Logger.Debug().
				Str("cache_tag", tag).
				Bool("cache_hit", hit).
				Msg("cache lookup")

			return result, nil
		},
	}
}

// ClerkSessionResolver resolves sessions from the Clerk claims the auth
// middleware stored on the request context.
type ClerkSessionResolver struct{}

// Resolve returns the session for the current request, or (nil, nil) when
// no Clerk claims are present.
func (ClerkSessionResolver) Resolve(ctx context.Context) (*model.Session, error) {
	claims, ok := clerk.SessionClaimsFromContext(ctx)
	if !ok {
		return nil, nil
	}

	return &model.Session{
		UserID:      claims.Subject,
		Role:        claims.ActiveOrganizationRole,
		Permissions: claims.Claims.ActiveOrganizationPermissions,
	}, nil
}
