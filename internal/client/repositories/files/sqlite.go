package files

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/dbx"
	"github.com/dmitrijs2005/vidbatch/internal/timex"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Replace runs in its own transaction when the repository holds a *sql.DB,
// and inside the caller's transaction otherwise.
func (r *SQLiteRepository) Replace(ctx context.Context, key Key, items []models.FileItem) error {
	if db, ok := r.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return NewSQLiteRepository(tx).Replace(ctx, key, items)
		})
	}

	if err := r.Forget(ctx, key); err != nil {
		return err
	}

	query := `INSERT INTO cached_files (category, subfolder, filepath, filename, size, modified, file_type, metadata, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(category, subfolder, filepath) DO UPDATE SET
			filename = excluded.filename,
			size = excluded.size,
			modified = excluded.modified,
			file_type = excluded.file_type,
			metadata = excluded.metadata,
			position = excluded.position`

	for i, it := range items {
		meta, err := encodeMetadata(it.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata of %s: %w", it.Filepath, err)
		}
		_, err = r.db.ExecContext(ctx, query,
			string(key.Category), key.Subfolder, it.Filepath, it.Filename, it.Size,
			encodeTime(it.Modified), it.FileType, meta, i)
		if err != nil {
			return fmt.Errorf("failed to cache %s: %w", it.Filepath, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, key Key) ([]models.FileItem, error) {
	query := `SELECT filepath, filename, size, modified, file_type, metadata
		FROM cached_files WHERE category = ? AND subfolder = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, string(key.Category), key.Subfolder)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached files: %w", err)
	}
	defer rows.Close()

	var result []models.FileItem
	for rows.Next() {
		var (
			it       models.FileItem
			modified sql.NullString
			meta     sql.NullString
		)
		if err := rows.Scan(&it.Filepath, &it.Filename, &it.Size, &modified, &it.FileType, &meta); err != nil {
			return nil, fmt.Errorf("failed to scan cached file: %w", err)
		}
		if modified.Valid {
			if it.Modified, err = timex.ParseTimestamp(modified.String); err != nil {
				return nil, fmt.Errorf("cached file %s: %w", it.Filepath, err)
			}
		}
		if meta.Valid && meta.String != "" {
			if err := json.Unmarshal([]byte(meta.String), &it.Metadata); err != nil {
				return nil, fmt.Errorf("cached file %s: bad metadata: %w", it.Filepath, err)
			}
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached files: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Forget(ctx context.Context, key Key) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cached_files WHERE category = ? AND subfolder = ?`,
		string(key.Category), key.Subfolder)
	if err != nil {
		return fmt.Errorf("failed to forget listing %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) ForgetPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := make([]any, len(paths))
	for i, p := range paths {
		args[i] = p
	}
	query := `DELETE FROM cached_files WHERE filepath IN (?` + strings.Repeat(", ?", len(paths)-1) + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to forget cached paths: %w", err)
	}
	return nil
}

func encodeTime(t timex.Timestamp) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeMetadata(m map[string]any) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
