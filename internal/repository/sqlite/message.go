package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mentorhub/mentorhub/pkg/models"
)

func (r *SQLiteRepo) CreateMessage(ctx context.Context, m *models.Message) error {
	if m == nil {
		return fmt.Errorf("message is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO messages (id, sender_id, recipient_id, subject, body) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.SenderID, m.RecipientID, m.Subject, m.Body)
	return err
}

func (r *SQLiteRepo) ListInbox(ctx context.Context, userID int64, limit, offset int) ([]models.Message, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, sender_id, recipient_id, COALESCE(subject, ''), body, read_flag, created_at FROM messages WHERE recipient_id = ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *SQLiteRepo) ListConversation(ctx context.Context, userA, userB int64, limit, offset int) ([]models.Message, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, sender_id, recipient_id, COALESCE(subject, ''), body, read_flag, created_at FROM messages
		WHERE (sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)
		ORDER BY created_at, id LIMIT ? OFFSET ?`,
		userA, userB, userB, userA, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// MarkRead flips the read flag; only the recipient's copy is affected.
func (r *SQLiteRepo) MarkRead(ctx context.Context, id string, recipientID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE messages SET read_flag = 1 WHERE id = ? AND recipient_id = ?`, id, recipientID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM messages WHERE recipient_id = ? AND read_flag = 0`, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	var out []models.Message
	for rows.Next() {
		var m models.Message
		var read int
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body, &read, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Read = read != 0
		out = append(out, m)
	}
	return out, rows.Err()
}
