// Package users implements the identity directory: account signup and
// credential verification. Everything else trusts the identity this
// package resolves at login.
package users

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ipeonte/usernotes/internal/common"
	"github.com/ipeonte/usernotes/internal/logging"
	"github.com/ipeonte/usernotes/internal/server/auth"
	"github.com/ipeonte/usernotes/internal/server/config"
	"github.com/ipeonte/usernotes/internal/server/models"
	"github.com/ipeonte/usernotes/internal/server/repositories/repomanager"
)

// Service provides account operations:
//   - SignUp: create a user with a unique name
//   - Authenticate: verify credentials and mint a session token
type Service struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	logger        logging.Logger
	secretKey     []byte
	tokenValidity time.Duration

	// serializes the name-exists check for concurrent signups; the
	// users.name unique constraint backstops other processes
	signupMu sync.Mutex
}

// NewService constructs a Service using repositories and server config.
func NewService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		db:            db,
		repomanager:   m,
		logger:        logger.With("module", "users"),
		secretKey:     []byte(cfg.SecretKey),
		tokenValidity: cfg.SessionTokenValidity,
	}
}

// SignUp creates a new account. A name that already exists yields
// common.ErrorConflict; exactly one of two concurrent signups for the
// same name succeeds.
func (s *Service) SignUp(ctx context.Context, name, password string) (*models.User, error) {
	s.logger.Info(ctx, "Saving new user", "user", name)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)

	s.signupMu.Lock()
	defer s.signupMu.Unlock()

	if _, err := repo.FindByName(ctx, name); err == nil {
		return nil, common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.WrapOp("checkNewUser", err)
	}

	user := &models.User{ID: uuid.NewString(), Name: name, PasswordHash: hash}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, common.WrapOp("createUser", err)
	}

	s.logger.Debug(ctx, "Successfully created new user", "user", name)
	return user, nil
}

// Authenticate verifies name/password and returns a signed session token
// carrying the requester identity. Unknown names and wrong passwords are
// both common.ErrorUnauthorized.
func (s *Service) Authenticate(ctx context.Context, name, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.WrapOp("findUser", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Name, s.secretKey, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}
