package api

import (
	"errors"
	"net/http"

	"github.com/edustack/platform/pkg/auth"
	"github.com/edustack/platform/pkg/httputil"
	"github.com/edustack/platform/pkg/middleware"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// listUsers handles GET /api/users for administrators
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.ParseQueryInt(r, "page", 1)
	if err != nil || page < 1 {
		httputil.WriteBadRequest(w, "Invalid page")
		return
	}
	pageSize, err := httputil.ParseQueryInt(r, "page_size", defaultPageSize)
	if err != nil || pageSize < 1 {
		httputil.WriteBadRequest(w, "Invalid page size")
		return
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	users, total, err := s.users.ListUsers(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list users")
		httputil.WriteInternalError(w, "Failed to list users")
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}

	httputil.WriteSuccess(w, UsersListResponse{
		Users:    out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// setUserActive handles PATCH /api/users/{id}/active. Administrators
// cannot deactivate their own account; locking yourself out is never
// what was meant.
func (s *Server) setUserActive(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if authCtx := middleware.GetAuthContext(r); authCtx != nil && authCtx.User.ID == id && !req.IsActive {
		httputil.WriteBadRequest(w, "Cannot deactivate your own account")
		return
	}

	if err := s.users.SetActive(r.Context(), id, req.IsActive); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		s.logger.WithError(err).Error("Failed to update account state")
		httputil.WriteInternalError(w, "Failed to update account state")
		return
	}

	s.refreshActiveUsersGauge(r)

	user, err := s.users.GetUserByID(r.Context(), id)
	if err != nil || user == nil {
		httputil.WriteNoContent(w)
		return
	}
	httputil.WriteSuccess(w, newUserResponse(user))
}

func (s *Server) refreshActiveUsersGauge(r *http.Request) {
	if s.metrics == nil {
		return
	}
	if count, err := s.users.CountActive(r.Context()); err == nil {
		s.metrics.ActiveUsersTotal.Set(float64(count))
	}
}
