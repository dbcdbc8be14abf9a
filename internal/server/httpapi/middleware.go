package httpapi

import (
	"net/http"
	"strings"

	"github.com/ipeonte/usernotes/internal/common"
	"github.com/ipeonte/usernotes/internal/server/auth"
)

// sessionCookie is the cookie the login handler sets; bearer tokens are
// accepted as well.
const sessionCookie = "token"

// authedHandler receives the resolved requester identity alongside the
// request; nothing below the boundary re-verifies credentials.
type authedHandler func(w http.ResponseWriter, r *http.Request, requester string)

// rateLimited gates next behind the named capability. Denials surface as
// a distinct throttling response, never as a business failure.
func (s *Server) rateLimited(capability string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.governor.TryAcquire(capability) {
			s.writeError(w, r, common.ErrorRateExceeded)
			return
		}
		next(w, r)
	}
}

// requireAuth resolves the requester identity from the session token and
// rejects requests without a valid one.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				token = c.Value
			}
		}
		if token == "" {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		requester, err := auth.GetUserNameFromToken(token, s.secretKey)
		if err != nil {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		next(w, r, requester)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}
