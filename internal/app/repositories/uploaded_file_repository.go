package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/logger"
)

var uploadedFileColumns = []string{
	"id", "folder_id", "file_name", "stored_filename", "file_url",
	"file_size", "mime_type", "document_type", "uploaded_by", "created_at", "updated_at",
}

// UploadedFileRepository handles database operations for stored files
type UploadedFileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUploadedFileRepository creates a new uploaded file repository
func NewUploadedFileRepository(db *pgxpool.Pool) *UploadedFileRepository {
	return &UploadedFileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a file record
func (r *UploadedFileRepository) Create(ctx context.Context, file *models.UploadedFile) error {
	sql, args, err := r.sb.Insert("uploaded_files").
		Columns("folder_id", "file_name", "stored_filename", "file_url",
			"file_size", "mime_type", "document_type", "uploaded_by").
		Values(file.FolderID, file.FileName, file.StoredFilename, file.FileURL,
			file.FileSize, file.MimeType, file.DocumentType, file.UploadedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create file SQL")
		return fmt.Errorf("failed to build create file query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt); err != nil {
		return fmt.Errorf("error creating file record: %w", err)
	}

	return nil
}

// GetByID retrieves a file record by ID
func (r *UploadedFileRepository) GetByID(ctx context.Context, id int64) (*models.UploadedFile, error) {
	sql, args, err := r.sb.Select(uploadedFileColumns...).
		From("uploaded_files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get file query: %w", err)
	}

	file, err := r.scanFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error retrieving file record: %w", err)
	}

	return file, nil
}

// GetByFileURL retrieves a file record by its path under the uploads root
func (r *UploadedFileRepository) GetByFileURL(ctx context.Context, fileURL string) (*models.UploadedFile, error) {
	sql, args, err := r.sb.Select(uploadedFileColumns...).
		From("uploaded_files").
		Where(squirrel.Eq{"file_url": fileURL}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get file query: %w", err)
	}

	file, err := r.scanFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error retrieving file record: %w", err)
	}

	return file, nil
}

// GetByDirectory retrieves the file records living directly in one directory
// (not in its subdirectories)
func (r *UploadedFileRepository) GetByDirectory(ctx context.Context, dirPath string) ([]*models.UploadedFile, error) {
	builder := r.sb.Select(uploadedFileColumns...).From("uploaded_files")
	if dirPath == "" {
		builder = builder.Where(squirrel.NotLike{"file_url": "%/%"})
	} else {
		prefix := escapeLikePattern(dirPath)
		builder = builder.
			Where(squirrel.Like{"file_url": prefix + "/%"}).
			Where(squirrel.NotLike{"file_url": prefix + "/%/%"})
	}

	sql, args, err := builder.OrderBy("file_url").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build directory files query: %w", err)
	}

	return r.queryFiles(ctx, sql, args...)
}

// GetByFolderID retrieves the file records attached to a folder row
func (r *UploadedFileRepository) GetByFolderID(ctx context.Context, folderID int64) ([]*models.UploadedFile, error) {
	sql, args, err := r.sb.Select(uploadedFileColumns...).
		From("uploaded_files").
		Where(squirrel.Eq{"folder_id": folderID}).
		OrderBy("file_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build folder files query: %w", err)
	}

	return r.queryFiles(ctx, sql, args...)
}

// UpdateFolderID re-parents a file record, used when self-healing orphans
func (r *UploadedFileRepository) UpdateFolderID(ctx context.Context, fileID int64, folderID *int64) error {
	sql, args, err := r.sb.Update("uploaded_files").
		Set("folder_id", folderID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": fileID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update file query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating file record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}

// Delete removes a file record
func (r *UploadedFileRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("uploaded_files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete file query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}

// DeleteByDirectoryPrefix removes every file record under a directory,
// returning how many rows went away
func (r *UploadedFileRepository) DeleteByDirectoryPrefix(ctx context.Context, dirPath string) (int64, error) {
	sql, args, err := r.sb.Delete("uploaded_files").
		Where(squirrel.Like{"file_url": escapeLikePattern(dirPath) + "/%"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete files query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting file records: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// escapeLikePattern escapes the LIKE wildcards in a literal path prefix.
// Sanitized folder names carry underscores, which LIKE would otherwise
// treat as single-character wildcards.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *UploadedFileRepository) queryFiles(ctx context.Context, sql string, args ...any) ([]*models.UploadedFile, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.UploadedFile
	for rows.Next() {
		file, err := r.scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

func (r *UploadedFileRepository) scanFile(row pgx.Row) (*models.UploadedFile, error) {
	var file models.UploadedFile
	err := row.Scan(
		&file.ID,
		&file.FolderID,
		&file.FileName,
		&file.StoredFilename,
		&file.FileURL,
		&file.FileSize,
		&file.MimeType,
		&file.DocumentType,
		&file.UploadedBy,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}
