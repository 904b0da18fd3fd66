package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/paulloo/relivator/internal/model"
	"github.com/paulloo/relivator/internal/server"
)

// BoardRepository performs board persistence against PostgreSQL.
type BoardRepository struct {
	server *server.Server
}

// NewBoardRepository constructs a BoardRepository.
func NewBoardRepository(s *server.Server) *BoardRepository {
	return &BoardRepository{
		server: s,
	}
}

const boardColumns = `id, owner_id, title, description, created_at, updated_at`

func scanBoard(row pgx.Row) (*model.Board, error) {
	var b model.Board
	err := row.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByIDAndOwner returns the board matching BOTH the id and the owner, or
// (nil, nil) when no such row exists. The ownership filter lives in the
// query itself so an unowned board is indistinguishable from a missing one.
func (r *BoardRepository) FindByIDAndOwner(ctx context.Context, boardID, ownerID string) (*model.Board, error) {
	row := r.server.DB.Pool.QueryRow(ctx, `
		SELECT `+boardColumns+`
		FROM boards
		WHERE id = $1 AND owner_id = $2`,
		boardID, ownerID,
	)

	board, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding board by id and owner")
	}

	return board, nil
}

// ListByOwner returns all boards owned by ownerID, newest first.
func (r *BoardRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Board, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+boardColumns+`
		FROM boards
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "listing boards by owner")
	}
	defer rows.Close()

	boards, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Board])
	if err != nil {
		return nil, errors.Wrap(err, "scanning board rows")
	}

	return boards, nil
}

// Create inserts a board and returns the stored row. Unique and check
// violations surface as pgconn errors for sqlerr to translate.
func (r *BoardRepository) Create(ctx context.Context, ownerID, title, description string) (*model.Board, error) {
	row := r.server.DB.Pool.QueryRow(ctx, `
		INSERT INTO boards (owner_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING `+boardColumns,
		ownerID, title, description,
	)

	return scanBoard(row)
}

// Update rewrites the board's title and description and returns the updated
// row, or (nil, nil) when the id/owner pair matches nothing.
func (r *BoardRepository) Update(ctx context.Context, boardID, ownerID, title, description string) (*model.Board, error) {
	row := r.server.DB.Pool.QueryRow(ctx, `
		UPDATE boards
		SET title = $3, description = $4, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+boardColumns,
		boardID, ownerID, title, description,
	)

	board, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return board, nil
}

// Delete removes the board and reports whether a row was deleted.
func (r *BoardRepository) Delete(ctx context.Context, boardID, ownerID string) (bool, error) {
	tag, err := r.server.DB.Pool.Exec(ctx, `
		DELETE FROM boards
		WHERE id = $1 AND owner_id = $2`,
		boardID, ownerID,
	)
	if err != nil {
		return false, errors.Wrap(err, "deleting board")
	}

	return tag.RowsAffected() > 0, nil
}
