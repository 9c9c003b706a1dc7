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

// CourseAssignmentRepository handles database operations for
// professor-course-semester assignments
type CourseAssignmentRepository struct {
	db *pgxpool.Pool
}

// NewCourseAssignmentRepository creates a new course assignment repository
func NewCourseAssignmentRepository(db *pgxpool.Pool) *CourseAssignmentRepository {
	return &CourseAssignmentRepository{
		db: db,
	}
}

// Create creates a new course assignment. A duplicate
// (course, professor, semester) triple maps to a conflict error.
func (r *CourseAssignmentRepository) Create(ctx context.Context, assignment *models.CourseAssignment) error {
	query := `
		INSERT INTO course_assignments (course_id, professor_user_id, semester_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		assignment.CourseID, assignment.ProfessorUserID, assignment.SemesterID,
	).Scan(&assignment.ID, &assignment.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("professor is already assigned to this course for this semester")
		}
		return fmt.Errorf("error creating course assignment: %w", err)
	}

	return nil
}

// GetByID retrieves an assignment with its course, professor and semester
func (r *CourseAssignmentRepository) GetByID(ctx context.Context, id int64) (*models.CourseAssignment, error) {
	query := assignmentSelect + ` WHERE a.id = $1`

	assignment, err := r.scanAssignment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving course assignment: %w", err)
	}

	return assignment, nil
}

// Find retrieves the assignment for a specific (course, professor, semester)
func (r *CourseAssignmentRepository) Find(ctx context.Context, courseID, professorUserID, semesterID int64) (*models.CourseAssignment, error) {
	query := assignmentSelect + ` WHERE a.course_id = $1 AND a.professor_user_id = $2 AND a.semester_id = $3`

	assignment, err := r.scanAssignment(r.db.QueryRow(ctx, query, courseID, professorUserID, semesterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving course assignment: %w", err)
	}

	return assignment, nil
}

// GetByProfessorAndSemester retrieves all assignments of a professor in one
// semester, ordered by course code
func (r *CourseAssignmentRepository) GetByProfessorAndSemester(ctx context.Context, professorUserID, semesterID int64) ([]*models.CourseAssignment, error) {
	query := assignmentSelect + ` WHERE a.professor_user_id = $1 AND a.semester_id = $2 ORDER BY c.code`

	rows, err := r.db.Query(ctx, query, professorUserID, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.CourseAssignment
	for rows.Next() {
		assignment, err := r.scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetBySemester retrieves every assignment in one semester, ordered by
// professor then course code
func (r *CourseAssignmentRepository) GetBySemester(ctx context.Context, semesterID int64) ([]*models.CourseAssignment, error) {
	query := assignmentSelect + ` WHERE a.semester_id = $1 ORDER BY u.last_name, c.code`

	rows, err := r.db.Query(ctx, query, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.CourseAssignment
	for rows.Next() {
		assignment, err := r.scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

const assignmentSelect = `
	SELECT a.id, a.course_id, a.professor_user_id, a.semester_id, a.created_at,
	       c.id, c.department_id, c.code, c.name, c.description, c.credits,
	       u.id, u.email, u.first_name, u.last_name, u.role, u.department_id, u.professor_id,
	       s.id, s.academic_year_id, s.term,
	       y.id, y.year_code, y.is_active, y.created_at
	FROM course_assignments a
	JOIN courses c ON c.id = a.course_id
	JOIN users u ON u.id = a.professor_user_id
	JOIN semesters s ON s.id = a.semester_id
	JOIN academic_years y ON y.id = s.academic_year_id`

func (r *CourseAssignmentRepository) scanAssignment(row pgx.Row) (*models.CourseAssignment, error) {
	var assignment models.CourseAssignment
	var course models.Course
	var professor models.User
	var semester models.Semester
	var year models.AcademicYear

	err := row.Scan(
		&assignment.ID,
		&assignment.CourseID,
		&assignment.ProfessorUserID,
		&assignment.SemesterID,
		&assignment.CreatedAt,
		&course.ID,
		&course.DepartmentID,
		&course.Code,
		&course.Name,
		&course.Description,
		&course.Credits,
		&professor.ID,
		&professor.Email,
		&professor.FirstName,
		&professor.LastName,
		&professor.Role,
		&professor.DepartmentID,
		&professor.ProfessorID,
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
	assignment.Course = &course
	assignment.Professor = &professor
	assignment.Semester = &semester
	return &assignment, nil
}
