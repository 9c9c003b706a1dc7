package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/dberrors"
)

const folderColumns = `id, name, path, folder_type, parent_id, owner_user_id, course_id, semester_id, created_at, updated_at`

// FolderRepository handles database operations for folders
type FolderRepository struct {
	db *pgxpool.Pool
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *pgxpool.Pool) *FolderRepository {
	return &FolderRepository{
		db: db,
	}
}

// Create inserts a folder row. A path collision maps to
// apperrors.ErrFolderAlreadyExists so concurrent provisioning can treat the
// race as success.
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (name, path, folder_type, parent_id, owner_user_id, course_id, semester_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		folder.Name, folder.Path, folder.Type, folder.ParentID,
		folder.OwnerUserID, folder.CourseID, folder.SemesterID,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrFolderAlreadyExists
		}
		return fmt.Errorf("error creating folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *FolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = $1`

	folder, err := r.scanFolder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFolderNotFound
		}
		return nil, fmt.Errorf("error retrieving folder: %w", err)
	}

	return folder, nil
}

// GetByPath retrieves a folder by its normalized path
func (r *FolderRepository) GetByPath(ctx context.Context, path string) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE path = $1`

	folder, err := r.scanFolder(r.db.QueryRow(ctx, query, path))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFolderNotFound
		}
		return nil, fmt.Errorf("error retrieving folder: %w", err)
	}

	return folder, nil
}

// GetChildren retrieves the direct children of a folder
func (r *FolderRepository) GetChildren(ctx context.Context, parentID int64) ([]*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id = $1 ORDER BY name`

	return r.queryFolders(ctx, query, parentID)
}

// GetSubtree retrieves a folder and every descendant, shallowest first
func (r *FolderRepository) GetSubtree(ctx context.Context, path string) ([]*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE path = $1 OR path LIKE $2 ORDER BY path`

	return r.queryFolders(ctx, query, path, escapeLikePattern(path)+"/%")
}

// GetProfessorFolders retrieves the professor-level folders owned by a user
func (r *FolderRepository) GetProfessorFolders(ctx context.Context, ownerUserID int64) ([]*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE owner_user_id = $1 AND folder_type = $2 ORDER BY path`

	return r.queryFolders(ctx, query, ownerUserID, models.FolderTypeProfessor)
}

// Delete removes a single folder row
func (r *FolderRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting folder: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFolderNotFound
	}

	return nil
}

// DeleteSubtree removes a folder row and every descendant row
func (r *FolderRepository) DeleteSubtree(ctx context.Context, path string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM folders WHERE path = $1 OR path LIKE $2`, path, escapeLikePattern(path)+"/%")
	if err != nil {
		return 0, fmt.Errorf("error deleting folder subtree: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// HasChildren reports whether a folder has child folders
func (r *FolderRepository) HasChildren(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM folders WHERE parent_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking folder children: %w", err)
	}

	return exists, nil
}

func (r *FolderRepository) queryFolders(ctx context.Context, query string, args ...any) ([]*models.Folder, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		folder, err := r.scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return folders, nil
}

func (r *FolderRepository) scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.Name,
		&folder.Path,
		&folder.Type,
		&folder.ParentID,
		&folder.OwnerUserID,
		&folder.CourseID,
		&folder.SemesterID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}
