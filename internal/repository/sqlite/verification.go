package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mentorhub/mentorhub/pkg/models"
)

func (r *SQLiteRepo) CreateRequest(ctx context.Context, req *models.VerificationRequest) error {
	if req == nil {
		return fmt.Errorf("verification request is nil")
	}
	if req.Status == "" {
		req.Status = models.VerificationPending
	}
	if req.SubmittedAt == "" {
		req.SubmittedAt = now()
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO verification_requests (id, student_email, document, status, rejection_reason, submitted_at) VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID, req.StudentEmail, req.Document, req.Status, req.RejectionReason, req.SubmittedAt)
	return err
}

func (r *SQLiteRepo) GetRequest(ctx context.Context, id string) (*models.VerificationRequest, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, student_email, COALESCE(document, ''), status, COALESCE(rejection_reason, ''), submitted_at FROM verification_requests WHERE id = ?`, id)
	var req models.VerificationRequest
	if err := row.Scan(&req.ID, &req.StudentEmail, &req.Document, &req.Status, &req.RejectionReason, &req.SubmittedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &req, nil
}

func (r *SQLiteRepo) ListRequests(ctx context.Context, status string) ([]models.VerificationRequest, error) {
	q := `SELECT id, student_email, COALESCE(document, ''), status, COALESCE(rejection_reason, ''), submitted_at FROM verification_requests`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY submitted_at DESC, rowid DESC`

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *SQLiteRepo) ListRequestsByEmail(ctx context.Context, email string) ([]models.VerificationRequest, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, student_email, COALESCE(document, ''), status, COALESCE(rejection_reason, ''), submitted_at FROM verification_requests WHERE student_email = ? ORDER BY submitted_at DESC, rowid DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *SQLiteRepo) HasPendingForEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM verification_requests WHERE student_email = ? AND status = ?`, email, models.VerificationPending).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepo) UpdateRequest(ctx context.Context, req *models.VerificationRequest) error {
	if req == nil {
		return fmt.Errorf("verification request is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE verification_requests SET status = ?, rejection_reason = ?, document = ? WHERE id = ?`,
		req.Status, req.RejectionReason, req.Document, req.ID)
	return err
}

func scanRequests(rows *sql.Rows) ([]models.VerificationRequest, error) {
	var out []models.VerificationRequest
	for rows.Next() {
		var req models.VerificationRequest
		if err := rows.Scan(&req.ID, &req.StudentEmail, &req.Document, &req.Status, &req.RejectionReason, &req.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
