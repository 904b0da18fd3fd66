package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paulloo/relivator/internal/procedure"
	"github.com/paulloo/relivator/internal/server"
	"github.com/paulloo/relivator/internal/service"
	"github.com/paulloo/relivator/internal/validation"
)

// BoardHandler exposes the board endpoints, each built from a procedure
// variant:
//
//	list    — cached (per-user, tag "boards")
//	create  — protected
//	get     — board-scoped
//	update  — board-scoped
//	delete  — board-scoped
//	invite  — board-scoped
type BoardHandler struct {
	Handler
	builder  *procedure.Builder
	services *service.Services
}

// NewBoardHandler constructs a BoardHandler.
func NewBoardHandler(s *server.Server, services *service.Services, builder *procedure.Builder) *BoardHandler {
	return &BoardHandler{
		Handler:  NewHandler(s),
		builder:  builder,
		services: services,
	}
}

// --- Request payloads -------------------------------------------------------

// ListBoardsRequest has no inputs; the caller's identity scopes the query.
type ListBoardsRequest struct{}

func (r *ListBoardsRequest) Validate() error { return nil }

// CacheKey keeps all list results for one user under a single cache entry.
func (r *ListBoardsRequest) CacheKey() string { return "list" }

// GetBoardRequest targets a single board by path id.
type GetBoardRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetBoardRequest) Validate() error       { return validation.Struct(r) }
func (r *GetBoardRequest) TargetBoardID() string { return r.ID }

// CreateBoardRequest carries the new board's content.
type CreateBoardRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func (r *CreateBoardRequest) Validate() error { return validation.Struct(r) }

// UpdateBoardRequest rewrites a board's content.
type UpdateBoardRequest struct {
	ID          string `param:"id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func (r *UpdateBoardRequest) Validate() error       { return validation.Struct(r) }
func (r *UpdateBoardRequest) TargetBoardID() string { return r.ID }

// DeleteBoardRequest removes a board.
type DeleteBoardRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteBoardRequest) Validate() error       { return validation.Struct(r) }
func (r *DeleteBoardRequest) TargetBoardID() string { return r.ID }

// InviteBoardRequest sends a board invitation email.
type InviteBoardRequest struct {
	ID    string `param:"id" validate:"required,uuid"`
	Email string `json:"email" validate:"required,email"`
}

func (r *InviteBoardRequest) Validate() error       { return validation.Struct(r) }
func (r *InviteBoardRequest) TargetBoardID() string { return r.ID }

// --- Routes -----------------------------------------------------------------

// Register builds the board procedures and mounts them on the router using
// their own metadata.
func (h *BoardHandler) Register(e *echo.Echo) {
	list := h.builder.Cached(procedure.Meta{
		Name:   "boards.list",
		Method: http.MethodGet,
		Path:   "/api/boards",
	}, service.TagBoards, 0)
	mount(e, list, procedure.Handle(h.builder, list, http.StatusOK,
		func() *ListBoardsRequest { return &ListBoardsRequest{} }, h.list))

	create := h.builder.Protected(procedure.Meta{
		Name:   "boards.create",
		Method: http.MethodPost,
		Path:   "/api/boards",
	})
	mount(e, create, procedure.Handle(h.builder, create, http.StatusCreated,
		func() *CreateBoardRequest { return &CreateBoardRequest{} }, h.create))

	get := h.builder.BoardScoped(procedure.Meta{
		Name:   "boards.get",
		Method: http.MethodGet,
		Path:   "/api/boards/:id",
	})
	mount(e, get, procedure.Handle(h.builder, get, http.StatusOK,
		func() *GetBoardRequest { return &GetBoardRequest{} }, h.get))

	update := h.builder.BoardScoped(procedure.Meta{
		Name:   "boards.update",
		Method: http.MethodPut,
		Path:   "/api/boards/:id",
	})
	mount(e, update, procedure.Handle(h.builder, update, http.StatusOK,
		func() *UpdateBoardRequest { return &UpdateBoardRequest{} }, h.update))

	del := h.builder.BoardScoped(procedure.Meta{
		Name:   "boards.delete",
		Method: http.MethodDelete,
		Path:   "/api/boards/:id",
	})
	mount(e, del, procedure.Handle(h.builder, del, http.StatusOK,
		func() *DeleteBoardRequest { return &DeleteBoardRequest{} }, h.delete))

	invite := h.builder.BoardScoped(procedure.Meta{
		Name:   "boards.invite",
		Method: http.MethodPost,
		Path:   "/api/boards/:id/invite",
	})
	mount(e, invite, procedure.Handle(h.builder, invite, http.StatusAccepted,
		func() *InviteBoardRequest { return &InviteBoardRequest{} }, h.invite))
}

// mount registers a procedure's handler under its own method and path.
func mount(e *echo.Echo, p *procedure.Procedure, fn echo.HandlerFunc) {
	e.Add(p.Meta().Method, p.Meta().Path, fn)
}

// --- Terminal handlers ------------------------------------------------------

func (h *BoardHandler) list(ctx context.Context, pc *procedure.Context, _ *ListBoardsRequest) (any, error) {
	return h.services.Board.List(ctx, pc.User().ID)
}

func (h *BoardHandler) create(ctx context.Context, pc *procedure.Context, req *CreateBoardRequest) (any, error) {
	return h.services.Board.Create(ctx, pc.User().ID, req.Title, req.Description)
}

func (h *BoardHandler) get(_ context.Context, pc *procedure.Context, _ *GetBoardRequest) (any, error) {
	// The board-scope step already loaded and ownership-checked the board.
	return pc.Board(), nil
}

func (h *BoardHandler) update(ctx context.Context, pc *procedure.Context, req *UpdateBoardRequest) (any, error) {
	return h.services.Board.Update(ctx, req.ID, pc.User().ID, req.Title, req.Description)
}

func (h *BoardHandler) delete(ctx context.Context, pc *procedure.Context, req *DeleteBoardRequest) (any, error) {
	deleted, err := h.services.Board.Delete(ctx, req.ID, pc.User().ID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"deleted": deleted}, nil
}

func (h *BoardHandler) invite(ctx context.Context, pc *procedure.Context, req *InviteBoardRequest) (any, error) {
	boardURL := h.server.Config.Integration.AppBaseURL + "/boards/" + pc.Board().ID

	if err := h.services.Board.Invite(ctx, pc.Board(), pc.User().ID, req.Email, boardURL); err != nil {
		return nil, err
	}

	return map[string]any{"queued": true}, nil
}
