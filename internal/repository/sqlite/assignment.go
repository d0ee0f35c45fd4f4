package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mentorhub/mentorhub/pkg/models"
)

func (r *SQLiteRepo) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, mentor_id, student_id, assigned_date, COALESCE(notes, '') FROM mentor_student ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *SQLiteRepo) ListByMentor(ctx context.Context, mentorID int64) ([]models.Assignment, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, mentor_id, student_id, assigned_date, COALESCE(notes, '') FROM mentor_student WHERE mentor_id = ? ORDER BY id`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *SQLiteRepo) GetByStudent(ctx context.Context, studentID int64) (*models.Assignment, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, mentor_id, student_id, assigned_date, COALESCE(notes, '') FROM mentor_student WHERE student_id = ?`, studentID)
	var a models.Assignment
	if err := row.Scan(&a.ID, &a.MentorID, &a.StudentID, &a.AssignedDate, &a.Notes); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &a, nil
}

// Reassign replaces any existing assignment for the student with the given one
// in a single transaction, so no intermediate unassigned state is observable
// and the UNIQUE(student_id) constraint is never violated.
func (r *SQLiteRepo) Reassign(ctx context.Context, a *models.Assignment) error {
	if a == nil {
		return fmt.Errorf("assignment is nil")
	}

	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin reassign tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mentor_student WHERE student_id = ?`, a.StudentID); err != nil {
		return fmt.Errorf("delete old assignment: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO mentor_student (mentor_id, student_id, notes) VALUES (?, ?, ?)`,
		a.MentorID, a.StudentID, a.Notes); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteRepo) Unassign(ctx context.Context, studentID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM mentor_student WHERE student_id = ?`, studentID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanAssignments(rows *sql.Rows) ([]models.Assignment, error) {
	var out []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.MentorID, &a.StudentID, &a.AssignedDate, &a.Notes); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
