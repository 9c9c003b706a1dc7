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

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (department_id, code, name, description, credits)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.DepartmentID, course.Code, course.Name, course.Description, course.Credits,
	).Scan(&course.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("course " + course.Code + " already exists")
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course with its department
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT c.id, c.department_id, c.code, c.name, c.description, c.credits,
		       d.id, d.name, d.code
		FROM courses c
		JOIN departments d ON d.id = c.department_id
		WHERE c.id = $1
	`

	course, err := r.scanCourseWithDepartment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetByCode retrieves a course by its code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := `
		SELECT c.id, c.department_id, c.code, c.name, c.description, c.credits,
		       d.id, d.name, d.code
		FROM courses c
		JOIN departments d ON d.id = c.department_id
		WHERE c.code = $1
	`

	course, err := r.scanCourseWithDepartment(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetByDepartment retrieves all courses offered by a department
func (r *CourseRepository) GetByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.department_id, c.code, c.name, c.description, c.credits,
		       d.id, d.name, d.code
		FROM courses c
		JOIN departments d ON d.id = c.department_id
		WHERE c.department_id = $1
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := r.scanCourseWithDepartment(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *CourseRepository) scanCourseWithDepartment(row pgx.Row) (*models.Course, error) {
	var course models.Course
	var department models.Department
	err := row.Scan(
		&course.ID,
		&course.DepartmentID,
		&course.Code,
		&course.Name,
		&course.Description,
		&course.Credits,
		&department.ID,
		&department.Name,
		&department.Code,
	)
	if err != nil {
		return nil, err
	}
	course.Department = &department
	return &course, nil
}
