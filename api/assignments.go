package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorhub/mentorhub/internal/assignment"
	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

type AssignmentsHandler struct {
	svc         *assignment.Service
	assignments repository.AssignmentRepo
	users       repository.UserRepo
}

func NewAssignmentsHandler(svc *assignment.Service, ar repository.AssignmentRepo, ur repository.UserRepo) *AssignmentsHandler {
	return &AssignmentsHandler{svc: svc, assignments: ar, users: ur}
}

func (h *AssignmentsHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.assignments.ListAssignments(r.Context())
	if err != nil {
		writeError(w, "failed to list assignments", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []models.Assignment{}
	}

	writeJSON(w, map[string]any{"items": rows, "total": len(rows)}, http.StatusOK)
}

type assignRequest struct {
	MentorID  int64  `json:"mentor_id"`
	StudentID int64  `json:"student_id"`
	Notes     string `json:"notes,omitempty"`
}

func (h *AssignmentsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.MentorID <= 0 || req.StudentID <= 0 {
		writeError(w, "mentor_id and student_id are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Assign(r.Context(), req.MentorID, req.StudentID, req.Notes); err != nil {
		switch {
		case errors.Is(err, assignment.ErrMentorNotFound), errors.Is(err, assignment.ErrStudentNotFound):
			writeError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, assignment.ErrNotMentor), errors.Is(err, assignment.ErrNotStudent):
			writeError(w, err.Error(), http.StatusBadRequest)
		default:
			writeError(w, "failed to assign student", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]any{"assigned": true}, http.StatusCreated)
}

// Unassign deletes by student_id alone, any mentor. The optional reason is
// logged and discarded.
func (h *AssignmentsHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	studentID, err := strconv.ParseInt(q.Get("student_id"), 10, 64)
	if err != nil || studentID <= 0 {
		writeError(w, "student_id is required", http.StatusBadRequest)
		return
	}

	removed, err := h.svc.Unassign(r.Context(), studentID, q.Get("reason"))
	if err != nil {
		writeError(w, "failed to unassign student", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"removed": removed}, http.StatusOK)
}

type mentorStudentEntry struct {
	StudentID   int64  `json:"student_id"`
	StudentName string `json:"student_name"`
}

func (h *AssignmentsHandler) StudentsForMentor(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := pathID(mux.Vars(r), "mentorID")
	if !ok {
		writeError(w, "invalid mentor id", http.StatusBadRequest)
		return
	}

	rows, err := h.assignments.ListByMentor(r.Context(), mentorID)
	if err != nil {
		writeError(w, "failed to list students", http.StatusInternalServerError)
		return
	}

	items := make([]mentorStudentEntry, 0, len(rows))
	for _, a := range rows {
		entry := mentorStudentEntry{StudentID: a.StudentID}
		if u, err := h.users.GetByID(r.Context(), a.StudentID); err == nil && u != nil {
			entry.StudentName = u.Name
		}
		items = append(items, entry)
	}

	writeJSON(w, map[string]any{"mentor_id": mentorID, "count": len(items), "items": items}, http.StatusOK)
}

func (h *AssignmentsHandler) MentorForStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(mux.Vars(r), "studentID")
	if !ok {
		writeError(w, "invalid student id", http.StatusBadRequest)
		return
	}

	mentorID, assigned := h.svc.MentorForStudent(studentID)
	if !assigned {
		writeJSON(w, map[string]any{"student_id": studentID, "mentor": nil}, http.StatusOK)
		return
	}

	name, err := h.svc.MentorNameForStudent(r.Context(), studentID)
	if err != nil {
		writeError(w, "failed to resolve mentor", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"student_id": studentID,
		"mentor":     map[string]any{"id": mentorID, "name": name},
	}, http.StatusOK)
}
