package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mentorhub/mentorhub/internal/verification"
	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

type VerificationsHandler struct {
	rec      *verification.Reconciler
	requests repository.VerificationRepo
	users    repository.UserRepo
}

func NewVerificationsHandler(rec *verification.Reconciler, vr repository.VerificationRepo, ur repository.UserRepo) *VerificationsHandler {
	return &VerificationsHandler{rec: rec, requests: vr, users: ur}
}

func (h *VerificationsHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	rows, err := h.requests.ListRequests(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, "failed to list verification requests", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []models.VerificationRequest{}
	}

	writeJSON(w, map[string]any{"items": rows, "total": len(rows)}, http.StatusOK)
}

func (h *VerificationsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, "request id is required", http.StatusBadRequest)
		return
	}

	if err := h.rec.Approve(r.Context(), id); err != nil {
		if errors.Is(err, verification.ErrRequestNotFound) {
			writeError(w, "verification request not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to approve request", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": models.VerificationApproved}, http.StatusOK)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *VerificationsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, "request id is required", http.StatusBadRequest)
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.rec.Reject(r.Context(), id, req.Reason); err != nil {
		switch {
		case errors.Is(err, verification.ErrReasonRequired):
			writeError(w, "rejection reason is required", http.StatusBadRequest)
		case errors.Is(err, verification.ErrRequestNotFound):
			writeError(w, "verification request not found", http.StatusNotFound)
		default:
			writeError(w, "failed to reject request", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]string{"status": models.VerificationRejected}, http.StatusOK)
}

// Scan triggers the promotion pass on demand, same work the background
// scanner does every interval.
func (h *VerificationsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	created, err := h.rec.ScanForNewSubmissions(r.Context())
	if err != nil {
		writeError(w, "scan failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]int{"created": created}, http.StatusOK)
}

type submitVerificationRequest struct {
	Document string `json:"document,omitempty"`
}

// SubmitVerification is the student-side entry point: it marks the mirror
// status pending so the next scan promotes it into a reviewable request.
func (h *VerificationsHandler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(mux.Vars(r), "id")
	if !ok {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, "failed to load user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "user not found", http.StatusNotFound)
		return
	}

	var req submitVerificationRequest
	if r.Body != nil {
		// body is optional; a bare submission still goes pending
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.rec.Submit(r.Context(), user.Email, req.Document); err != nil {
		writeError(w, "failed to submit verification", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": models.VerificationPending}, http.StatusAccepted)
}

func (h *VerificationsHandler) VerificationStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(mux.Vars(r), "id")
	if !ok {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, "failed to load user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "user not found", http.StatusNotFound)
		return
	}

	status, err := h.rec.StatusForEmail(r.Context(), user.Email)
	if err != nil {
		writeError(w, "failed to resolve status", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"email": user.Email, "status": status}, http.StatusOK)
}
