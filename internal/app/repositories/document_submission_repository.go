package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/dberrors"
)

const submissionColumns = `id, course_assignment_id, document_type, file_id, due_date, submitted_at, created_at, updated_at`

// DocumentSubmissionRepository handles database operations for required
// document submissions
type DocumentSubmissionRepository struct {
	db *pgxpool.Pool
}

// NewDocumentSubmissionRepository creates a new document submission repository
func NewDocumentSubmissionRepository(db *pgxpool.Pool) *DocumentSubmissionRepository {
	return &DocumentSubmissionRepository{
		db: db,
	}
}

// Create inserts a submission slot for one required document
func (r *DocumentSubmissionRepository) Create(ctx context.Context, submission *models.DocumentSubmission) error {
	query := `
		INSERT INTO document_submissions (course_assignment_id, document_type, due_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		submission.CourseAssignmentID, submission.DocumentType, submission.DueDate,
	).Scan(&submission.ID, &submission.CreatedAt, &submission.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("submission slot already exists for this document type")
		}
		return fmt.Errorf("error creating document submission: %w", err)
	}

	return nil
}

// GetByID retrieves a submission by ID
func (r *DocumentSubmissionRepository) GetByID(ctx context.Context, id int64) (*models.DocumentSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM document_submissions WHERE id = $1`

	submission, err := r.scanSubmission(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("document submission not found")
		}
		return nil, fmt.Errorf("error retrieving document submission: %w", err)
	}

	return submission, nil
}

// GetByAssignment retrieves the submission slots of one course assignment
func (r *DocumentSubmissionRepository) GetByAssignment(ctx context.Context, assignmentID int64) ([]*models.DocumentSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM document_submissions WHERE course_assignment_id = $1 ORDER BY document_type`

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.DocumentSubmission
	for rows.Next() {
		submission, err := r.scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}

// GetByAssignmentAndType retrieves one submission slot
func (r *DocumentSubmissionRepository) GetByAssignmentAndType(ctx context.Context, assignmentID int64, docType models.DocumentType) (*models.DocumentSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM document_submissions WHERE course_assignment_id = $1 AND document_type = $2`

	submission, err := r.scanSubmission(r.db.QueryRow(ctx, query, assignmentID, docType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("document submission not found")
		}
		return nil, fmt.Errorf("error retrieving document submission: %w", err)
	}

	return submission, nil
}

// MarkSubmitted attaches a file to a submission slot and stamps the time
func (r *DocumentSubmissionRepository) MarkSubmitted(ctx context.Context, id, fileID int64, submittedAt time.Time) error {
	query := `
		UPDATE document_submissions
		SET file_id = $1, submitted_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, fileID, submittedAt, id)
	if err != nil {
		return fmt.Errorf("error marking submission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("document submission not found")
	}

	return nil
}

// ReassignFile re-points every slot referencing one file at another file,
// keeping the submission timestamp
func (r *DocumentSubmissionRepository) ReassignFile(ctx context.Context, fromFileID, toFileID int64) error {
	query := `
		UPDATE document_submissions
		SET file_id = $2, updated_at = NOW()
		WHERE file_id = $1
	`

	if _, err := r.db.Exec(ctx, query, fromFileID, toFileID); err != nil {
		return fmt.Errorf("error reassigning submission: %w", err)
	}

	return nil
}

// ClearSubmission detaches a deleted file from its submission slot
func (r *DocumentSubmissionRepository) ClearSubmission(ctx context.Context, fileID int64) error {
	query := `
		UPDATE document_submissions
		SET file_id = NULL, submitted_at = NULL, updated_at = NOW()
		WHERE file_id = $1
	`

	if _, err := r.db.Exec(ctx, query, fileID); err != nil {
		return fmt.Errorf("error clearing submission: %w", err)
	}

	return nil
}

func (r *DocumentSubmissionRepository) scanSubmission(row pgx.Row) (*models.DocumentSubmission, error) {
	var submission models.DocumentSubmission
	err := row.Scan(
		&submission.ID,
		&submission.CourseAssignmentID,
		&submission.DocumentType,
		&submission.FileID,
		&submission.DueDate,
		&submission.SubmittedAt,
		&submission.CreatedAt,
		&submission.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
