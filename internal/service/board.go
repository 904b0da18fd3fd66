package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/paulloo/relivator/internal/cache"
	"github.com/paulloo/relivator/internal/lib/job"
	"github.com/paulloo/relivator/internal/model"
	"github.com/paulloo/relivator/internal/repository"
	"github.com/paulloo/relivator/internal/server"
)

// TagBoards is the cache tag all cached board reads are stored under.
// Mutations invalidate this tag for the acting user.
const TagBoards = "boards"

// BoardService orchestrates board persistence, cache-tag invalidation, and
// the invite-email background job.
type BoardService struct {
	server *server.Server
	boards *repository.BoardRepository
	cache  *cache.Cache
}

// NewBoardService constructs a BoardService.
func NewBoardService(s *server.Server, boards *repository.BoardRepository, c *cache.Cache) *BoardService {
	return &BoardService{
		server: s,
		boards: boards,
		cache:  c,
	}
}

// List returns all boards owned by ownerID, newest first.
func (s *BoardService) List(ctx context.Context, ownerID string) ([]model.Board, error) {
	return s.boards.ListByOwner(ctx, ownerID)
}

// Create persists a new board for ownerID and invalidates the owner's
// cached board reads.
func (s *BoardService) Create(ctx context.Context, ownerID, title, description string) (*model.Board, error) {
	board, err := s.boards.Create(ctx, ownerID, title, description)
	if err != nil {
		return nil, err
	}

	s.invalidateBoards(ctx, ownerID)

	return board, nil
}

// Update rewrites a board's title and description. The ownership check
// already ran in the procedure chain; the repository filter keeps the
// update scoped to the owner regardless.
func (s *BoardService) Update(ctx context.Context, boardID, ownerID, title, description string) (*model.Board, error) {
	board, err := s.boards.Update(ctx, boardID, ownerID, title, description)
	if err != nil {
		return nil, err
	}

	s.invalidateBoards(ctx, ownerID)

	return board, nil
}

// Delete removes a board and reports whether anything was deleted.
func (s *BoardService) Delete(ctx context.Context, boardID, ownerID string) (bool, error) {
	deleted, err := s.boards.Delete(ctx, boardID, ownerID)
	if err != nil {
		return false, err
	}

	if deleted {
		s.invalidateBoards(ctx, ownerID)
	}

	return deleted, nil
}

// Invite enqueues a board invitation email as a background task. The
// request returns as soon as the task is queued; delivery, retries, and
// failures are the job worker's problem.
func (s *BoardService) Invite(ctx context.Context, board *model.Board, inviterName, email, boardURL string) error {
	task, err := job.NewBoardInviteTask(job.BoardInvitePayload{
		To:          email,
		InviterName: inviterName,
		BoardTitle:  board.Title,
		BoardURL:    boardURL,
	})
	if err != nil {
		return errors.Wrap(err, "building board invite task")
	}

	info, err := s.server.Job.Client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrap(err, "enqueuing board invite task")
	}

	s.server.Logger.Info().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("board_id", board.ID).
		Msg("board invite enqueued")

	return nil
}

// invalidateBoards drops every cached board read for the owner. Failures
// are logged, not returned: the mutation already succeeded and a stale
// cache entry expires on its own TTL.
func (s *BoardService) invalidateBoards(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx, TagBoards, ownerID); err != nil {
		s.server.Logger.Warn().Err(err).
			Str("cache_tag", TagBoards).
			Msg("board cache invalidation failed")
	}
}
