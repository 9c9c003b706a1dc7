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

// AcademicRepository handles database operations for academic years and
// their semesters
type AcademicRepository struct {
	db *pgxpool.Pool
}

// NewAcademicRepository creates a new academic repository
func NewAcademicRepository(db *pgxpool.Pool) *AcademicRepository {
	return &AcademicRepository{
		db: db,
	}
}

// CreateYear creates a new academic year
func (r *AcademicRepository) CreateYear(ctx context.Context, year *models.AcademicYear) error {
	query := `
		INSERT INTO academic_years (year_code, is_active)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, year.YearCode, year.IsActive).Scan(&year.ID, &year.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("academic year " + year.YearCode + " already exists")
		}
		return fmt.Errorf("error creating academic year: %w", err)
	}

	return nil
}

// GetYearByID retrieves an academic year by ID
func (r *AcademicRepository) GetYearByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	query := `SELECT id, year_code, is_active, created_at FROM academic_years WHERE id = $1`

	var year models.AcademicYear
	err := r.db.QueryRow(ctx, query, id).Scan(&year.ID, &year.YearCode, &year.IsActive, &year.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}

	return &year, nil
}

// GetYearByCode retrieves an academic year by its code (e.g. "2024-2025")
func (r *AcademicRepository) GetYearByCode(ctx context.Context, yearCode string) (*models.AcademicYear, error) {
	query := `SELECT id, year_code, is_active, created_at FROM academic_years WHERE year_code = $1`

	var year models.AcademicYear
	err := r.db.QueryRow(ctx, query, yearCode).Scan(&year.ID, &year.YearCode, &year.IsActive, &year.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}

	return &year, nil
}

// GetAllYears retrieves all academic years, newest first
func (r *AcademicRepository) GetAllYears(ctx context.Context) ([]*models.AcademicYear, error) {
	query := `SELECT id, year_code, is_active, created_at FROM academic_years ORDER BY year_code DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		var year models.AcademicYear
		if err := rows.Scan(&year.ID, &year.YearCode, &year.IsActive, &year.CreatedAt); err != nil {
			return nil, err
		}
		years = append(years, &year)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return years, nil
}

// CreateSemester creates a semester within an academic year
func (r *AcademicRepository) CreateSemester(ctx context.Context, semester *models.Semester) error {
	query := `
		INSERT INTO semesters (academic_year_id, term)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, semester.AcademicYearID, semester.Term).Scan(&semester.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("semester already exists for this year")
		}
		return fmt.Errorf("error creating semester: %w", err)
	}

	return nil
}

// GetSemesterByID retrieves a semester with its academic year
func (r *AcademicRepository) GetSemesterByID(ctx context.Context, id int64) (*models.Semester, error) {
	query := `
		SELECT s.id, s.academic_year_id, s.term, y.id, y.year_code, y.is_active, y.created_at
		FROM semesters s
		JOIN academic_years y ON y.id = s.academic_year_id
		WHERE s.id = $1
	`

	semester, err := r.scanSemesterWithYear(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	return semester, nil
}

// GetSemesterByYearAndTerm retrieves a semester by year code and term
func (r *AcademicRepository) GetSemesterByYearAndTerm(ctx context.Context, yearCode string, term models.SemesterTerm) (*models.Semester, error) {
	query := `
		SELECT s.id, s.academic_year_id, s.term, y.id, y.year_code, y.is_active, y.created_at
		FROM semesters s
		JOIN academic_years y ON y.id = s.academic_year_id
		WHERE y.year_code = $1 AND s.term = $2
	`

	semester, err := r.scanSemesterWithYear(r.db.QueryRow(ctx, query, yearCode, term))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	return semester, nil
}

// GetSemestersByYear retrieves the semesters of one academic year
func (r *AcademicRepository) GetSemestersByYear(ctx context.Context, academicYearID int64) ([]*models.Semester, error) {
	query := `
		SELECT s.id, s.academic_year_id, s.term, y.id, y.year_code, y.is_active, y.created_at
		FROM semesters s
		JOIN academic_years y ON y.id = s.academic_year_id
		WHERE s.academic_year_id = $1
		ORDER BY s.term
	`

	rows, err := r.db.Query(ctx, query, academicYearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		semester, err := r.scanSemesterWithYear(rows)
		if err != nil {
			return nil, err
		}
		semesters = append(semesters, semester)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return semesters, nil
}

func (r *AcademicRepository) scanSemesterWithYear(row pgx.Row) (*models.Semester, error) {
	var semester models.Semester
	var year models.AcademicYear
	err := row.Scan(
		&semester.ID,
		&semester.AcademicYearID,
		&semester.Term,
		&year.ID,
		&year.YearCode,
		&year.IsActive,
		&year.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	semester.AcademicYear = &year
	return &semester, nil
}
