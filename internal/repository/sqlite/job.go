package sqlite

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorhub/pkg/models"
)

func (r *SQLiteRepo) CreateJobPost(ctx context.Context, j *models.JobPost) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job post is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO job_posts (company, title, skills) VALUES (?, ?, ?)`, j.Company, j.Title, j.Skills)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListJobPosts(ctx context.Context) ([]models.JobPost, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, company, title, COALESCE(skills, ''), created_at FROM job_posts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JobPost
	for rows.Next() {
		var j models.JobPost
		if err := rows.Scan(&j.ID, &j.Company, &j.Title, &j.Skills, &j.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
