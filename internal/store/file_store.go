package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FileStore keeps the history of generated documents, newest first.
type FileStore interface {
	// Save inserts f, assigning an id and creation time when they are unset.
	Save(ctx context.Context, f *GeneratedFile) error
	List(ctx context.Context) ([]GeneratedFile, error)
	Get(ctx context.Context, id uuid.UUID) (*GeneratedFile, error)
	// Rename updates the display name and on-disk path of a file.
	Rename(ctx context.Context, id uuid.UUID, fileName, filePath string) (*GeneratedFile, error)
	// Delete removes a record and returns it so the caller can remove the file.
	Delete(ctx context.Context, id uuid.UUID) (*GeneratedFile, error)
}

type pgFileStore struct {
	pool *pgxpool.Pool
}

// NewFileStore returns a FileStore backed by the generated_files table.
func NewFileStore(pool *pgxpool.Pool) FileStore {
	return &pgFileStore{pool: pool}
}

const fileColumns = "id, template_id, file_name, file_path, format, grand_total, created_at"

func (s *pgFileStore) Save(ctx context.Context, f *GeneratedFile) error {
	name, err := validName(f.FileName)
	if err != nil {
		return err
	}
	f.FileName = name
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO generated_files (`+fileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, f.ID, f.TemplateID, f.FileName, f.FilePath, f.Format, f.GrandTotal, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert generated file: %w", err)
	}
	return nil
}

func (s *pgFileStore) List(ctx context.Context) ([]GeneratedFile, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+fileColumns+` FROM generated_files ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query generated files: %w", err)
	}
	defer rows.Close()

	files := make([]GeneratedFile, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read generated files: %w", err)
	}
	return files, nil
}

func (s *pgFileStore) Get(ctx context.Context, id uuid.UUID) (*GeneratedFile, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+fileColumns+` FROM generated_files WHERE id = $1`, id)
	return scanFile(row)
}

func (s *pgFileStore) Rename(ctx context.Context, id uuid.UUID, fileName, filePath string) (*GeneratedFile, error) {
	name, err := validName(fileName)
	if err != nil {
		return nil, err
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE generated_files SET file_name = $2, file_path = $3
		WHERE id = $1
		RETURNING `+fileColumns, id, name, filePath)
	return scanFile(row)
}

func (s *pgFileStore) Delete(ctx context.Context, id uuid.UUID) (*GeneratedFile, error) {
	row := s.pool.QueryRow(ctx, `DELETE FROM generated_files WHERE id = $1 RETURNING `+fileColumns, id)
	return scanFile(row)
}

func scanFile(row pgx.Row) (*GeneratedFile, error) {
	var f GeneratedFile
	err := row.Scan(&f.ID, &f.TemplateID, &f.FileName, &f.FilePath, &f.Format, &f.GrandTotal, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to scan generated file: %w", err)
	}
	return &f, nil
}
