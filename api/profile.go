package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/mentorhub/mentorhub/internal/cv"
	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

type ProfileHandler struct {
	users    repository.UserRepo
	profiles repository.ProfileRepo
	cv       *cv.Generator
	validate *validator.Validate
}

func NewProfileHandler(ur repository.UserRepo, pr repository.ProfileRepo, gen *cv.Generator) *ProfileHandler {
	return &ProfileHandler{users: ur, profiles: pr, cv: gen, validate: validator.New()}
}

func (h *ProfileHandler) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return nil, false
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "failed to load user", http.StatusInternalServerError)
		return nil, false
	}
	if u == nil {
		writeError(w, "user not found", http.StatusNotFound)
		return nil, false
	}
	return u, true
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	profile, err := h.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	quals, err := h.profiles.ListQualifications(ctx, user.ID)
	if err != nil {
		writeError(w, "failed to load qualifications", http.StatusInternalServerError)
		return
	}
	limit, offset := pagination(r)
	acts, err := h.profiles.ListActivities(ctx, user.ID, limit, offset)
	if err != nil {
		writeError(w, "failed to load activities", http.StatusInternalServerError)
		return
	}

	if quals == nil {
		quals = []models.Qualification{}
	}
	if acts == nil {
		acts = []models.StudentActivity{}
	}

	writeJSON(w, map[string]any{
		"user":           user,
		"profile":        profile,
		"qualifications": quals,
		"activities":     acts,
	}, http.StatusOK)
}

type updateProfileRequest struct {
	Bio    *string  `json:"bio,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	profile, err := h.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		profile = &models.Profile{UserID: user.ID}
		if _, err := h.profiles.CreateProfile(ctx, profile); err != nil {
			writeError(w, "failed to create profile", http.StatusInternalServerError)
			return
		}
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Skills != nil {
		cleaned := make([]string, 0, len(req.Skills))
		for _, s := range req.Skills {
			if s = strings.TrimSpace(s); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		profile.Skills = strings.Join(cleaned, ",")
	}

	if err := h.profiles.UpdateProfile(ctx, profile); err != nil {
		writeError(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}

func (h *ProfileHandler) AddQualification(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	var q models.Qualification
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	q.UserID = user.ID
	q.VerificationStatus = models.VerificationNone
	if err := h.validate.Struct(&q); err != nil {
		writeError(w, fmt.Sprintf("validation failed: %v", err), http.StatusBadRequest)
		return
	}

	id, err := h.profiles.AddQualification(r.Context(), &q)
	if err != nil {
		writeError(w, "failed to add qualification", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]int64{"id": id}, http.StatusCreated)
}

func (h *ProfileHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	var a models.StudentActivity
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	a.UserID = user.ID
	a.Activity = strings.TrimSpace(a.Activity)
	a.VerificationStatus = models.VerificationNone
	if a.Activity == "" {
		writeError(w, "activity is required", http.StatusBadRequest)
		return
	}
	if len(a.Activity) > 2000 {
		writeError(w, "activity too long", http.StatusBadRequest)
		return
	}

	id, err := h.profiles.AddActivity(r.Context(), &a)
	if err != nil {
		writeError(w, "failed to add activity", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]int64{"id": id}, http.StatusCreated)
}

// GetCV renders the student's CV as plain text.
func (h *ProfileHandler) GetCV(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	doc, err := h.cv.Render(r.Context(), user.ID)
	if err != nil {
		writeError(w, "failed to render cv", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
