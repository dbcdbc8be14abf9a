// Package notes implements the access-controlled note store. Every
// operation takes the requester identity resolved by the authentication
// boundary and consults the access predicates before touching a record.
package notes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ipeonte/usernotes/internal/common"
	"github.com/ipeonte/usernotes/internal/dbx"
	"github.com/ipeonte/usernotes/internal/logging"
	"github.com/ipeonte/usernotes/internal/server/access"
	"github.com/ipeonte/usernotes/internal/server/models"
	"github.com/ipeonte/usernotes/internal/server/repositories/repomanager"
)

// Service owns note records and enforces the ownership/sharing rules.
type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewService constructs the note store over the given repositories.
func NewService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *Service {
	return &Service{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "notes"),
	}
}

// FindAll returns every note the requester may read: owned plus shared
// with. The order is stable within a snapshot.
func (s *Service) FindAll(ctx context.Context, name string) ([]*models.Note, error) {
	s.logger.Info(ctx, "Searching all notes for user", "user", name)

	result, err := s.repomanager.Notes(s.db).FindForUser(ctx, name)
	if err != nil {
		return nil, common.WrapOp("findAll", err)
	}

	s.logger.Debug(ctx, "Found notes for user", "count", len(result), "user", name)
	return result, nil
}

// Add creates a new note owned by the requester, with an empty shared set.
func (s *Service) Add(ctx context.Context, name, text string) (*models.Note, error) {
	s.logger.Info(ctx, "Adding new note for user", "user", name)

	note := &models.Note{ID: uuid.NewString(), Owner: name, Body: text}

	result, err := s.repomanager.Notes(s.db).Create(ctx, note)
	if err != nil {
		return nil, common.WrapOp("add", err)
	}

	s.logger.Debug(ctx, "Saved new note", "note", result.ID, "user", name)
	return result, nil
}

// Find returns a note the requester may read. Absent notes and notes the
// requester has no access to are both common.ErrorNotFound, so callers
// cannot probe for existence.
func (s *Service) Find(ctx context.Context, name, id string) (*models.Note, error) {
	return s.findAny(ctx, name, id)
}

// Update replaces the text of a note owned by the requester.
func (s *Service) Update(ctx context.Context, name, id, text string) (*models.Note, error) {
	s.logger.Info(ctx, "Updating existing note", "note", id, "user", name)

	note, err := s.findByOwner(ctx, name, id)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Notes(s.db).UpdateText(ctx, id, text); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.WrapOp("update", err)
	}

	note.Body = text
	s.logger.Debug(ctx, "Saved updated note", "note", id, "user", name)
	return note, nil
}

// Delete permanently removes a note owned by the requester, including its
// shared set. The removal is transactional so a note row never outlives
// its shares or vice versa.
func (s *Service) Delete(ctx context.Context, name, id string) error {
	s.logger.Info(ctx, "Deleting existing note", "note", id, "user", name)

	if _, err := s.findByOwner(ctx, name, id); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)
		if err := repo.DeleteSharesByNoteID(ctx, id); err != nil {
			return err
		}
		return repo.DeleteByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.WrapOp("delete", err)
	}

	return nil
}

// Share grants userName read access to a note owned by the requester.
// Re-sharing with the same user is a no-op, as is sharing a note with its
// own owner.
func (s *Service) Share(ctx context.Context, name, noteID, userName string) error {
	s.logger.Info(ctx, "Sharing existing note", "note", noteID, "user", name, "target", userName)

	note, err := s.findByOwner(ctx, name, noteID)
	if err != nil {
		return err
	}

	// the owner already has full access; never add it to the shared set
	if userName == note.Owner {
		return nil
	}

	if err := s.repomanager.Notes(s.db).AddSharedUser(ctx, noteID, userName); err != nil {
		return common.WrapOp("share", err)
	}

	s.logger.Debug(ctx, "Saved note after sharing", "note", noteID, "user", name, "target", userName)
	return nil
}

// Search returns the requester-visible notes whose body contains query as
// a literal, case-sensitive substring.
func (s *Service) Search(ctx context.Context, name, query string) ([]*models.Note, error) {
	s.logger.Info(ctx, "Searching notes by query", "query", query, "user", name)

	result, err := s.repomanager.Notes(s.db).FindMatchingText(ctx, name, query)
	if err != nil {
		return nil, common.WrapOp("search", err)
	}

	s.logger.Debug(ctx, "Found notes by query", "count", len(result), "query", query, "user", name)
	return result, nil
}

// findAny loads a note the requester may read. Missing record and missing
// read access collapse into the same not-found signal.
func (s *Service) findAny(ctx context.Context, name, id string) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.WrapOp("find", err)
	}

	if !access.CanRead(name, note) {
		return nil, common.ErrorNotFound
	}

	return note, nil
}

// findByOwner loads a note for a mutating operation: the note must exist
// and the requester must be its owner.
func (s *Service) findByOwner(ctx context.Context, name, id string) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.WrapOp("find", err)
	}

	if !access.CanWrite(name, note) {
		return nil, common.ErrorForbidden
	}

	return note, nil
}
