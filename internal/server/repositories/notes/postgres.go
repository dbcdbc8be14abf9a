// Package notes provides the PostgreSQL-backed repository for note
// records and their shared sets.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ipeonte/usernotes/internal/common"
	"github.com/ipeonte/usernotes/internal/dbx"
	"github.com/ipeonte/usernotes/internal/server/models"
)

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	query :=
		`INSERT INTO notes (id, owner, body)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, note.ID, note.Owner, note.Body).Scan(&note.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`SELECT id, owner, body, created_at FROM notes
		 WHERE id = $1
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.Owner, &note.Body, &note.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	shares, err := r.sharedUsers(ctx, id)
	if err != nil {
		return nil, err
	}
	note.SharedWith = shares

	return note, nil
}

func (r *PostgresRepository) sharedUsers(ctx context.Context, noteID string) ([]string, error) {
	query :=
		`SELECT user_name FROM note_shares
		 WHERE note_id = $1
		 ORDER BY user_name
		 `

	rows, err := r.db.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) FindForUser(ctx context.Context, name string) ([]*models.Note, error) {
	query :=
		`SELECT DISTINCT n.id, n.owner, n.body, n.created_at
		 FROM notes n
		 LEFT JOIN note_shares s ON s.note_id = n.id
		 WHERE n.owner = $1 OR s.user_name = $1
		 ORDER BY n.created_at, n.id
		 `

	return r.queryNotes(ctx, query, name)
}

func (r *PostgresRepository) FindMatchingText(ctx context.Context, name, query string) ([]*models.Note, error) {
	// strpos gives literal, case-sensitive substring containment
	q :=
		`SELECT DISTINCT n.id, n.owner, n.body, n.created_at
		 FROM notes n
		 LEFT JOIN note_shares s ON s.note_id = n.id
		 WHERE (n.owner = $1 OR s.user_name = $1) AND strpos(n.body, $2) > 0
		 ORDER BY n.created_at, n.id
		 `

	return r.queryNotes(ctx, q, name, query)
}

func (r *PostgresRepository) queryNotes(ctx context.Context, query string, args ...any) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.Owner, &item.Body, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdateText(ctx context.Context, id, text string) error {
	query :=
		`UPDATE notes SET body = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, text)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) AddSharedUser(ctx context.Context, noteID, userName string) error {
	// primary key on (note_id, user_name) makes re-sharing a no-op
	query :=
		`INSERT INTO note_shares (note_id, user_name)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING
		 `

	_, err := r.db.ExecContext(ctx, query, noteID, userName)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteSharesByNoteID(ctx context.Context, noteID string) error {
	query :=
		`DELETE FROM note_shares
		 WHERE note_id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, noteID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	query :=
		`DELETE FROM notes
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
