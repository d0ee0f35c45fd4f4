// Package assignment keeps a consistent in-memory view of mentor-student
// pairings on top of the assignment repository. The reverse index is
// single-valued: the store guarantees at most one mentor per student, so the
// last row read wins only if legacy duplicates exist.
package assignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

var (
	ErrMentorNotFound  = errors.New("mentor not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrNotMentor       = errors.New("user is not a mentor")
	ErrNotStudent      = errors.New("user is not a student")
)

type Service struct {
	assignments repository.AssignmentRepo
	users       repository.UserRepo
	logger      *slog.Logger

	mu               sync.RWMutex
	mentorToStudents map[int64]map[int64]struct{}
	studentToMentor  map[int64]int64
}

func NewService(ar repository.AssignmentRepo, ur repository.UserRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		assignments:      ar,
		users:            ur,
		logger:           logger,
		mentorToStudents: make(map[int64]map[int64]struct{}),
		studentToMentor:  make(map[int64]int64),
	}
}

// Refresh reloads every assignment row and rebuilds both derived indexes.
func (s *Service) Refresh(ctx context.Context) error {
	rows, err := s.assignments.ListAssignments(ctx)
	if err != nil {
		return fmt.Errorf("load assignments: %w", err)
	}

	forward := make(map[int64]map[int64]struct{}, len(rows))
	reverse := make(map[int64]int64, len(rows))
	for _, a := range rows {
		set, ok := forward[a.MentorID]
		if !ok {
			set = make(map[int64]struct{})
			forward[a.MentorID] = set
		}
		set[a.StudentID] = struct{}{}
		reverse[a.StudentID] = a.MentorID
	}

	s.mu.Lock()
	s.mentorToStudents = forward
	s.studentToMentor = reverse
	s.mu.Unlock()

	return nil
}

// Assign pairs the student with the mentor. An existing pairing for the
// student is replaced atomically in the store, so no intermediate unassigned
// state is ever observable.
func (s *Service) Assign(ctx context.Context, mentorID, studentID int64, notes string) error {
	mentor, err := s.users.GetByID(ctx, mentorID)
	if err != nil {
		return fmt.Errorf("lookup mentor: %w", err)
	}
	if mentor == nil {
		return ErrMentorNotFound
	}
	if mentor.Role != "mentor" {
		return ErrNotMentor
	}

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("lookup student: %w", err)
	}
	if student == nil {
		return ErrStudentNotFound
	}
	if student.Role != "student" {
		return ErrNotStudent
	}

	a := &models.Assignment{MentorID: mentorID, StudentID: studentID, Notes: notes}
	if err := s.assignments.Reassign(ctx, a); err != nil {
		return fmt.Errorf("reassign student %d: %w", studentID, err)
	}

	return s.Refresh(ctx)
}

// Unassign removes the student's pairing regardless of mentor. Calling it for
// a student without a mentor is not an error; the removed flag reports whether
// a row actually went away.
func (s *Service) Unassign(ctx context.Context, studentID int64, reason string) (bool, error) {
	removed, err := s.assignments.Unassign(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("unassign student %d: %w", studentID, err)
	}
	if reason != "" {
		// the free-text reason is logged, not persisted
		s.logger.Info("student unassigned", slog.Int64("student_id", studentID), slog.String("reason", reason))
	}

	if err := s.Refresh(ctx); err != nil {
		return removed, err
	}
	return removed, nil
}

// StudentCountForMentor is a pure lookup against the derived index; unknown
// mentors count zero.
func (s *Service) StudentCountForMentor(mentorID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mentorToStudents[mentorID])
}

// StudentsForMentor returns the student ids currently paired with the mentor.
func (s *Service) StudentsForMentor(mentorID int64) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.mentorToStudents[mentorID]
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// MentorForStudent reports the student's mentor id, false when unassigned.
func (s *Service) MentorForStudent(studentID int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.studentToMentor[studentID]
	return id, ok
}

// MentorNameForStudent resolves the mentor's display name; empty when the
// student has no mentor or the mentor row is gone.
func (s *Service) MentorNameForStudent(ctx context.Context, studentID int64) (string, error) {
	mentorID, ok := s.MentorForStudent(studentID)
	if !ok {
		return "", nil
	}

	mentor, err := s.users.GetByID(ctx, mentorID)
	if err != nil {
		return "", fmt.Errorf("lookup mentor %d: %w", mentorID, err)
	}
	if mentor == nil {
		return "", nil
	}
	return mentor.Name, nil
}
