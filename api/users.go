package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorhub/mentorhub/internal/assignment"
	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

//go:embed userimport_schema.json
var userImportSchemaJSON []byte

type UsersHandler struct {
	userRepo    repository.UserRepo
	assignments *assignment.Service
	validate    *validator.Validate
}

func NewUsersHandler(ur repository.UserRepo, svc *assignment.Service) *UsersHandler {
	return &UsersHandler{userRepo: ur, assignments: svc, validate: validator.New()}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password,omitempty"`
}

func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	role := q.Get("role")
	status := q.Get("status")
	limit, offset := pagination(r)

	users, err := h.userRepo.ListUsers(r.Context(), role, status, limit, offset)
	if err != nil {
		writeError(w, "failed to list users", http.StatusInternalServerError)
		return
	}
	total, err := h.userRepo.CountUsers(r.Context(), role, status)
	if err != nil {
		writeError(w, "failed to count users", http.StatusInternalServerError)
		return
	}

	if users == nil {
		users = []models.User{}
	}

	resp := map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  users,
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	u := models.User{Name: req.Name, Email: req.Email, Role: req.Role, Status: req.Status}
	if u.Role == "" {
		u.Role = "student"
	}
	if u.Status == "" {
		u.Status = "pending"
	}
	if err := h.validate.Struct(&u); err != nil {
		writeError(w, fmt.Sprintf("validation failed: %v", err), http.StatusBadRequest)
		return
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, "error hashing password", http.StatusInternalServerError)
			return
		}
		u.PasswordHash = string(hash)
	}

	id, err := h.userRepo.CreateUser(r.Context(), &u)
	if err != nil {
		writeError(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]int64{"id": id}, http.StatusCreated)
}

func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	u, err := h.userRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "failed to load user", http.StatusInternalServerError)
		return
	}
	if u == nil {
		writeError(w, "user not found", http.StatusNotFound)
		return
	}

	writeJSON(w, u, http.StatusOK)
}

func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	existing, err := h.userRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "failed to load user", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		writeError(w, "user not found", http.StatusNotFound)
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Email != "" {
		existing.Email = req.Email
	}
	if req.Role != "" {
		existing.Role = req.Role
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	if err := h.validate.Struct(existing); err != nil {
		writeError(w, fmt.Sprintf("validation failed: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.userRepo.UpdateUser(r.Context(), existing); err != nil {
		writeError(w, "failed to update user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, existing, http.StatusOK)
}

// DeleteUser removes the user; assignment rows cascade server-side, so the
// mentorship indexes must be rebuilt afterwards.
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.userRepo.DeleteUser(r.Context(), id); err != nil {
		writeError(w, "failed to delete user", http.StatusInternalServerError)
		return
	}

	if err := h.assignments.Refresh(r.Context()); err != nil {
		logger.Error("assignment index refresh after user delete", "user_id", id, "err", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

type importSkip struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ImportUsers accepts a JSON array of user records, validates each element
// against the embedded JSON schema and creates the valid ones. Invalid rows
// are reported back, not fatal.
func (h *UsersHandler) ImportUsers(w http.ResponseWriter, r *http.Request) {
	var rows []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, "invalid json: expected an array of user records", http.StatusBadRequest)
		return
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(userImportSchemaJSON, rs); err != nil {
		writeError(w, "import schema unavailable", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	imported := 0
	var skipped []importSkip
	for i, raw := range rows {
		if reason := validateImportRow(ctx, rs, raw); reason != "" {
			skipped = append(skipped, importSkip{Index: i, Reason: reason})
			continue
		}

		var req createUserRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			skipped = append(skipped, importSkip{Index: i, Reason: err.Error()})
			continue
		}
		u := models.User{Name: req.Name, Email: req.Email, Role: req.Role, Status: req.Status}
		if _, err := h.userRepo.CreateUser(ctx, &u); err != nil {
			skipped = append(skipped, importSkip{Index: i, Reason: err.Error()})
			continue
		}
		imported++
	}

	if skipped == nil {
		skipped = []importSkip{}
	}
	writeJSON(w, map[string]any{"imported": imported, "skipped": skipped}, http.StatusOK)
}

func validateImportRow(ctx context.Context, rs *jsonschema.Schema, raw json.RawMessage) string {
	keyErrs, err := rs.ValidateBytes(ctx, raw)
	if err != nil {
		return err.Error()
	}
	if len(keyErrs) > 0 {
		return keyErrs[0].Error()
	}
	return ""
}
