package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"devconnect/internal/github"
	"devconnect/internal/httputil"
	"devconnect/internal/model"
	"devconnect/internal/service"
	"devconnect/internal/transport/http/middleware"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// writeValidationOrInternal maps the profile validation sentinels to 400 and
// everything else to an opaque 500.
func writeProfileError(w http.ResponseWriter, err error, who string) {
	switch {
	case errors.Is(err, model.ErrStatusRequired),
		errors.Is(err, model.ErrSkillsRequired),
		errors.Is(err, model.ErrTitleRequired),
		errors.Is(err, model.ErrCompanyRequired),
		errors.Is(err, model.ErrSchoolRequired),
		errors.Is(err, model.ErrDegreeRequired),
		errors.Is(err, model.ErrFromRequired):
		httputil.WriteValidationFailed(w, err.Error())
	case errors.Is(err, model.ErrProfileNotFound):
		httputil.WriteNotFound(w, "Profile not found")
	default:
		log.Printf("[ERROR] %s: err=%v", who, err)
		httputil.WriteInternalError(w, "Something went wrong")
	}
}

// Me handles GET /api/profile/me
// Returns the authenticated subject's profile.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.profileService.GetOwn(r.Context(), subjectID)
	if err != nil {
		writeProfileError(w, err, "Profile me handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// Upsert handles POST /api/profile
// Creates the subject's profile or updates the submitted fields in place.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationFailed(w, "Invalid request body")
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), subjectID, req)
	if err != nil {
		writeProfileError(w, err, "Profile upsert handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// List handles GET /api/profile
// Returns all profiles with the owner projection. Public.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] Profile list handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list profiles")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profiles)
}

// GetByUser handles GET /api/profile/user/{user_id}
// Public. A malformed id is treated the same as an unknown user: 404.
func (h *ProfileHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "user_id")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		httputil.WriteNotFound(w, "Profile not found")
		return
	}

	profile, err := h.profileService.GetByUser(r.Context(), userID)
	if err != nil {
		writeProfileError(w, err, "Profile by user handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// DeleteAccount handles DELETE /api/profile
// Removes the subject's posts, profile and user record.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.profileService.DeleteAccount(r.Context(), subjectID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Delete account handler: user=%d err=%v", subjectID, err)
		httputil.WriteInternalError(w, "Failed to delete account")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User deleted",
	})
}

// AddExperience handles PUT /api/profile/experience
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.AddExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationFailed(w, "Invalid request body")
		return
	}

	profile, err := h.profileService.AddExperience(r.Context(), subjectID, req)
	if err != nil {
		writeProfileError(w, err, "Add experience handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// RemoveExperience handles DELETE /api/profile/experience/{entry_id}
// Removing an absent entry id succeeds with the profile unchanged.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.profileService.RemoveExperience(r.Context(), subjectID, chi.URLParam(r, "entry_id"))
	if err != nil {
		writeProfileError(w, err, "Remove experience handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// AddEducation handles PUT /api/profile/education
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.AddEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationFailed(w, "Invalid request body")
		return
	}

	profile, err := h.profileService.AddEducation(r.Context(), subjectID, req)
	if err != nil {
		writeProfileError(w, err, "Add education handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// RemoveEducation handles DELETE /api/profile/education/{entry_id}
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.profileService.RemoveEducation(r.Context(), subjectID, chi.URLParam(r, "entry_id"))
	if err != nil {
		writeProfileError(w, err, "Remove education handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// GithubRepos handles GET /api/profile/github/{username}
// Public. Upstream failures surface as 404, never 500.
func (h *ProfileHandler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	repos, err := h.profileService.GithubRepos(r.Context(), username)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			httputil.WriteNotFound(w, "No GitHub profile found")
			return
		}
		log.Printf("[ERROR] Github repos handler: username=%s err=%v", username, err)
		httputil.WriteNotFound(w, "No GitHub profile found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, repos)
}
