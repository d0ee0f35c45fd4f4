package sqlite

import (
	"context"
	"database/sql"
)

// Mirror key-value view. Keys follow the conventions of the status mirror
// (verificationStatus-<email>, rejectionDetails-<email>, ...); values are
// opaque strings, JSON where the convention says so.

func (r *SQLiteRepo) GetKey(ctx context.Context, key string) (string, error) {
	var v string
	err := r.conn.QueryRow(ctx, `SELECT value FROM mirror_kv WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *SQLiteRepo) SetKey(ctx context.Context, key, value string) error {
	_, err := r.conn.Exec(ctx, `INSERT INTO mirror_kv (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now())
	return err
}

func (r *SQLiteRepo) DeleteKey(ctx context.Context, key string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM mirror_kv WHERE key = ?`, key)
	return err
}

func (r *SQLiteRepo) ListByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT key, value FROM mirror_kv WHERE key LIKE ? || '%' ORDER BY key`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}
