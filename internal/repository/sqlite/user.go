package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mentorhub/mentorhub/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}
	if u.Role == "" {
		u.Role = "student"
	}
	if u.Status == "" {
		u.Status = "pending"
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, role, status, password_hash) VALUES (?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Role, u.Status, u.PasswordHash)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.UpdatedAt, &pw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if pw.Valid {
		u.PasswordHash = pw.String
	}

	return &u, nil
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, status, updated_at, password_hash FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, status, updated_at, password_hash FROM users WHERE email = ?`, email)
	return r.scanUser(row)
}

func (r *SQLiteRepo) ListUsers(ctx context.Context, role, status string, limit, offset int) ([]models.User, error) {
	q := `SELECT id, name, email, role, status, updated_at, password_hash FROM users WHERE 1=1`
	args := []any{}
	if role != "" {
		q += ` AND role = ?`
		args = append(args, role)
	}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		var pw sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.UpdatedAt, &pw); err != nil {
			return nil, err
		}
		if pw.Valid {
			u.PasswordHash = pw.String
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountUsers(ctx context.Context, role, status string) (int64, error) {
	q := `SELECT COUNT(1) FROM users WHERE 1=1`
	args := []any{}
	if role != "" {
		q += ` AND role = ?`
		args = append(args, role)
	}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}

	var n int64
	if err := r.conn.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLiteRepo) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE users SET name = ?, email = ?, role = ?, status = ?, password_hash = ? WHERE id = ?`,
		u.Name, u.Email, u.Role, u.Status, u.PasswordHash, u.ID)
	return err
}

// DeleteUser removes the user; assignments, profile rows and messages cascade.
func (r *SQLiteRepo) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}
