package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mentorhub/mentorhub/pkg/models"
)

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO profiles (user_id, bio, skills) VALUES (?, ?, ?)`, p.UserID, p.Bio, p.Skills)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, COALESCE(bio, ''), COALESCE(skills, ''), updated_at FROM profiles WHERE user_id = ?`, userID)
	var p models.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Bio, &p.Skills, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE profiles SET bio = ?, skills = ? WHERE user_id = ?`, p.Bio, p.Skills, p.UserID)
	return err
}

// UserSkills returns the profile's skill list split from its comma-separated
// form, trimmed, empty entries dropped. Missing profile means no skills.
func (r *SQLiteRepo) UserSkills(ctx context.Context, userID int64) ([]string, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Skills == "" {
		return nil, nil
	}

	parts := strings.Split(p.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SQLiteRepo) AddQualification(ctx context.Context, q *models.Qualification) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("qualification is nil")
	}
	if q.VerificationStatus == "" {
		q.VerificationStatus = models.VerificationNone
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO qualifications (user_id, title, issuer, year, verification_status) VALUES (?, ?, ?, ?, ?)`,
		q.UserID, q.Title, q.Issuer, q.Year, q.VerificationStatus)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListQualifications(ctx context.Context, userID int64) ([]models.Qualification, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, title, COALESCE(issuer, ''), COALESCE(year, 0), verification_status FROM qualifications WHERE user_id = ? ORDER BY year DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Qualification
	for rows.Next() {
		var q models.Qualification
		if err := rows.Scan(&q.ID, &q.UserID, &q.Title, &q.Issuer, &q.Year, &q.VerificationStatus); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) AddActivity(ctx context.Context, a *models.StudentActivity) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("activity is nil")
	}
	if a.VerificationStatus == "" {
		a.VerificationStatus = models.VerificationNone
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO student_activities (user_id, activity, verification_status) VALUES (?, ?, ?)`,
		a.UserID, a.Activity, a.VerificationStatus)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListActivities(ctx context.Context, userID int64, limit, offset int) ([]models.StudentActivity, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, activity, verification_status, created_at FROM student_activities WHERE user_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StudentActivity
	for rows.Next() {
		var a models.StudentActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Activity, &a.VerificationStatus, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
