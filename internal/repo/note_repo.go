package repo

import (
	"context"

	dom "github.com/adi-1080/notesapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteRepo provides note persistence. Every method takes the owner ID
// and applies it in the query predicate itself, in the same statement
// as the lookup: a note under another owner behaves exactly like a
// missing row (pgx.ErrNoRows), with no fetch-then-check window.
type NoteRepo interface {
	Create(ctx context.Context, n dom.Note) (dom.Note, error)
	GetByID(ctx context.Context, ownerID, id int64) (dom.Note, error)
	List(ctx context.Context, ownerID int64, offset, limit int) ([]dom.Note, error)
	Update(ctx context.Context, ownerID, id int64, patch dom.Note) (dom.Note, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Search(ctx context.Context, ownerID int64, q string) ([]dom.Note, error)
}

// PGNoteRepo implements NoteRepo with Postgres.
type PGNoteRepo struct {
	db *pgxpool.Pool
}

func NewPGNoteRepo(db *pgxpool.Pool) *PGNoteRepo {
	return &PGNoteRepo{db: db}
}

func (r *PGNoteRepo) Create(ctx context.Context, n dom.Note) (dom.Note, error) {
	query := `
		INSERT INTO notes (owner_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, title, content, created_at, updated_at`
	var out dom.Note
	err := r.db.QueryRow(ctx, query, n.OwnerID, n.Title, n.Content).Scan(
		&out.ID, &out.OwnerID, &out.Title, &out.Content, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGNoteRepo) GetByID(ctx context.Context, ownerID, id int64) (dom.Note, error) {
	query := `
		SELECT id, owner_id, title, content, created_at, updated_at
		FROM notes WHERE id = $1 AND owner_id = $2`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

func (r *PGNoteRepo) List(ctx context.Context, ownerID int64, offset, limit int) ([]dom.Note, error) {
	query := `
		SELECT id, owner_id, title, content, created_at, updated_at
		FROM notes WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3`
	rows, err := r.db.Query(ctx, query, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *PGNoteRepo) Update(ctx context.Context, ownerID, id int64, patch dom.Note) (dom.Note, error) {
	query := `
		UPDATE notes SET title = $3, content = $4, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, content, created_at, updated_at`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, id, ownerID, patch.Title, patch.Content).Scan(
		&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

// Delete removes the note. Returns pgx.ErrNoRows when nothing matched,
// whether the note is absent or owned by someone else.
func (r *PGNoteRepo) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGNoteRepo) Search(ctx context.Context, ownerID int64, q string) ([]dom.Note, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT id, owner_id, title, content, created_at, updated_at
		FROM notes WHERE owner_id = $1 AND (title ILIKE $2 OR content ILIKE $2)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, ownerID, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func scanNotes(rows pgx.Rows) ([]dom.Note, error) {
	var list []dom.Note
	for rows.Next() {
		var n dom.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
