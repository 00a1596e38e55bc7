package api

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/edustack/platform/pkg/auth"
	"github.com/edustack/platform/pkg/httputil"
	"github.com/edustack/platform/pkg/middleware"
)

// signup handles POST /api/auth/signup
func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		httputil.WriteBadRequest(w, "Invalid email address")
		return
	}

	user, err := s.authSvc.Signup(r.Context(), email, req.Password, req.ConfirmPassword)
	if err != nil {
		s.recordAuthAttempt("signup", "failure")
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			httputil.WriteBadRequest(w, "Email already registered")
		case errors.Is(err, auth.ErrPasswordMismatch):
			httputil.WriteBadRequest(w, "Passwords do not match")
		case auth.IsPolicyError(err):
			httputil.WriteBadRequest(w, err.Error())
		default:
			s.logger.WithError(err).Error("Signup failed")
			httputil.WriteInternalError(w, "Failed to create account")
		}
		return
	}

	s.recordAuthAttempt("signup", "success")
	httputil.WriteCreated(w, newUserResponse(user))
}

// login handles POST /api/auth/login. Credentials arrive form-encoded
// under username/password; the username is the email address.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := httputil.ParseCredentialsForm(w, r)
	if !ok {
		return
	}

	email := strings.TrimSpace(strings.ToLower(username))
	_, pair, err := s.authSvc.Login(r.Context(), email, password)
	if err != nil {
		s.recordAuthAttempt("login", "failure")
		switch {
		case errors.Is(err, auth.ErrBadCredentials):
			w.Header().Set("WWW-Authenticate", "Bearer")
			httputil.WriteUnauthorized(w, "Incorrect email or password")
		case errors.Is(err, auth.ErrUserInactive):
			httputil.WriteBadRequest(w, "Inactive user")
		default:
			s.logger.WithError(err).Error("Login failed")
			httputil.WriteInternalError(w, "Failed to log in")
		}
		return
	}

	s.recordAuthAttempt("login", "success")
	s.recordTokensIssued()
	s.setAuthCookies(w, pair)
	httputil.WriteSuccess(w, newTokenResponse(pair))
}

// refreshToken handles POST /api/auth/refresh-token. The refresh token is
// read from its cookie; there is no body.
func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		httputil.WriteUnauthorized(w, "Refresh token missing")
		return
	}

	_, pair, err := s.authSvc.Refresh(r.Context(), cookie.Value)
	if err != nil {
		s.recordAuthAttempt("refresh", "failure")
		switch {
		case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrUserNotFound),
			errors.Is(err, auth.ErrUserInactive):
			w.Header().Set("WWW-Authenticate", "Bearer")
			httputil.WriteUnauthorized(w, "Could not validate credentials")
		default:
			s.logger.WithError(err).Error("Token refresh failed")
			httputil.WriteInternalError(w, "Failed to refresh token")
		}
		return
	}

	s.recordAuthAttempt("refresh", "success")
	s.recordTokensIssued()
	s.setAuthCookies(w, pair)
	httputil.WriteSuccess(w, newTokenResponse(pair))
}

// logout handles POST /api/auth/logout. Tokens are stateless, so logout
// only clears the cookies; outstanding tokens expire on their own.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookies(w)
	httputil.WriteMessage(w, "Successfully logged out")
}

// me handles GET /api/auth/me
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	authCtx := middleware.GetAuthContext(r)
	if authCtx == nil {
		httputil.WriteUnauthorized(w, "Could not validate credentials")
		return
	}
	httputil.WriteSuccess(w, newUserResponse(authCtx.User))
}

// profile handles GET /profile
func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	authCtx := middleware.GetAuthContext(r)
	if authCtx == nil {
		httputil.WriteUnauthorized(w, "Could not validate credentials")
		return
	}
	user := authCtx.User
	httputil.WriteSuccess(w, ProfileResponse{
		Email:       user.Email,
		IsActive:    user.IsActive,
		IsAdmin:     user.IsAdmin,
		MemberSince: user.CreatedAt,
		LastLogin:   user.LastLogin,
	})
}

func (s *Server) recordAuthAttempt(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.AuthAttemptsTotal.WithLabelValues(operation, outcome).Inc()
	}
}

func (s *Server) recordTokensIssued() {
	if s.metrics != nil {
		s.metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
		s.metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	}
}
