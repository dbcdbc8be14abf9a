package notes

import (
	"context"

	"github.com/ipeonte/usernotes/internal/server/models"
)

// Repository is the narrow persistence capability the note store depends
// on. All methods surface storage faults as wrapped generic errors; absent
// rows are common.ErrorNotFound.
type Repository interface {
	// Create persists a new note and returns it with the stored
	// creation timestamp.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)

	// FindByID loads a note with its full shared set, regardless of who
	// asks. Access checks are the caller's job.
	FindByID(ctx context.Context, id string) (*models.Note, error)

	// FindForUser returns every note where name is the owner or a shared
	// user, in a stable order. SharedWith is not populated on the results.
	FindForUser(ctx context.Context, name string) ([]*models.Note, error)

	// FindMatchingText returns the subset of FindForUser(name) whose body
	// contains query as a literal, case-sensitive substring.
	FindMatchingText(ctx context.Context, name, query string) ([]*models.Note, error)

	// UpdateText replaces the body of an existing note.
	UpdateText(ctx context.Context, id, text string) error

	// AddSharedUser grants userName read access. Idempotent: re-adding an
	// existing shared user changes nothing.
	AddSharedUser(ctx context.Context, noteID, userName string) error

	// DeleteSharesByNoteID removes the whole shared set of a note.
	DeleteSharesByNoteID(ctx context.Context, noteID string) error

	// DeleteByID removes the note row itself.
	DeleteByID(ctx context.Context, id string) error
}
