// Package httpapi exposes the note store over the REST surface:
// signup/login under /auth, note operations under /api. It resolves the
// requester identity from session tokens and gates every route with the
// rate governor before any business logic runs.
package httpapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/ipeonte/usernotes/internal/logging"
	"github.com/ipeonte/usernotes/internal/server/models"
	"github.com/ipeonte/usernotes/internal/server/ratelimit"
)

// UserService is the identity-directory surface the boundary needs.
type UserService interface {
	SignUp(ctx context.Context, name, password string) (*models.User, error)
	Authenticate(ctx context.Context, name, password string) (string, error)
}

// NoteService is the note-store surface the boundary needs.
type NoteService interface {
	FindAll(ctx context.Context, name string) ([]*models.Note, error)
	Add(ctx context.Context, name, text string) (*models.Note, error)
	Find(ctx context.Context, name, id string) (*models.Note, error)
	Update(ctx context.Context, name, id, text string) (*models.Note, error)
	Delete(ctx context.Context, name, id string) error
	Share(ctx context.Context, name, noteID, userName string) error
	Search(ctx context.Context, name, query string) ([]*models.Note, error)
}

// Capability names gated by the governor.
const (
	capAPI   = "api"
	capLogin = "login"
)

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	notes     NoteService
	governor  *ratelimit.Governor
	secretKey []byte
}

func NewServer(address string, l logging.Logger, us UserService, ns NoteService, g *ratelimit.Governor, secretKey string) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		notes:     ns,
		governor:  g,
		secretKey: []byte(secretKey),
	}

	g.OnDenied(func(capability string) {
		s.logger.Warn(context.Background(), "Rate limit exceeded", "capability", capability)
	})

	return s
}

// Handler builds the route table. Split out from Run so tests can drive
// the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /auth/login", s.rateLimited(capLogin, s.handleLogin))

	mux.HandleFunc("GET /api/notes", s.rateLimited(capAPI, s.requireAuth(s.handleFindAll)))
	mux.HandleFunc("POST /api/notes", s.rateLimited(capAPI, s.requireAuth(s.handleCreate)))
	mux.HandleFunc("GET /api/notes/{id}", s.rateLimited(capAPI, s.requireAuth(s.handleFind)))
	mux.HandleFunc("PUT /api/notes/{id}", s.rateLimited(capAPI, s.requireAuth(s.handleUpdate)))
	mux.HandleFunc("DELETE /api/notes/{id}", s.rateLimited(capAPI, s.requireAuth(s.handleDelete)))
	mux.HandleFunc("POST /api/notes/{noteId}/share/{userId}", s.rateLimited(capAPI, s.requireAuth(s.handleShare)))
	mux.HandleFunc("GET /api/search", s.rateLimited(capAPI, s.requireAuth(s.handleSearch)))

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
