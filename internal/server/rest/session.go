package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/session"
)

type loginRequest struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

type sessionResponse struct {
	Token     string    `json:"token,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Admin     bool      `json:"admin"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// login handles POST /api/v1/session/login. The token is returned in the
// body for API clients and set as an HttpOnly cookie for the browser.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req loginRequest
	if err := decodeJSON(body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	sess, err := session.Authenticate(r.Context(), s.deps.Verifier, req.ID, req.Secret, s.now())
	s.deps.Metrics.ObserveLogin(err)
	if err != nil {
		s.logger.Warn(r.Context(), "login rejected", "id", req.ID)
		s.fail(w, r, err)
		return
	}

	token, err := s.deps.Issuer.Issue(sess)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	expiresAt := sess.IssuedAt.Add(s.deps.Issuer.TTL())

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(s.deps.Issuer.TTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.Info(r.Context(), "admin logged in", "id", sess.Subject)
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     token,
		Subject:   sess.Subject,
		Admin:     sess.Admin,
		ExpiresAt: expiresAt,
	})
}

// logout drops the session cookie. Tokens are stateless, so a bearer
// token stays valid until it expires.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{Subject: sess.Subject, Admin: sess.Admin})
}
