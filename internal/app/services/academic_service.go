package services

import (
	"context"
	"time"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/app/repositories"
	"github.com/alquds/archivesystem/internal/pkg/logger"
)

// RequiredDocumentTypes are the document types every course assignment gets
// a submission slot for.
var RequiredDocumentTypes = []models.DocumentType{
	models.DocumentTypeSyllabus,
	models.DocumentTypeExam,
	models.DocumentTypeLectureNotes,
	models.DocumentTypeAssignment,
}

// AcademicService handles academic-calendar entities and course assignments.
type AcademicService struct {
	academicRepo   *repositories.AcademicRepository
	departmentRepo *repositories.DepartmentRepository
	courseRepo     *repositories.CourseRepository
	assignmentRepo *repositories.CourseAssignmentRepository
	submissionRepo *repositories.DocumentSubmissionRepository
	folders        *FolderService
}

// NewAcademicService creates a new academic service instance
func NewAcademicService(
	academicRepo *repositories.AcademicRepository,
	departmentRepo *repositories.DepartmentRepository,
	courseRepo *repositories.CourseRepository,
	assignmentRepo *repositories.CourseAssignmentRepository,
	submissionRepo *repositories.DocumentSubmissionRepository,
	folders *FolderService,
) *AcademicService {
	return &AcademicService{
		academicRepo:   academicRepo,
		departmentRepo: departmentRepo,
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		folders:        folders,
	}
}

// GetAcademicYears lists all academic years, newest first
func (s *AcademicService) GetAcademicYears(ctx context.Context) ([]*models.AcademicYear, error) {
	return s.academicRepo.GetAllYears(ctx)
}

// GetSemesters lists the semesters of an academic year
func (s *AcademicService) GetSemesters(ctx context.Context, academicYearID int64) ([]*models.Semester, error) {
	// Ensure the year exists so the caller gets a 404, not an empty list.
	if _, err := s.academicRepo.GetYearByID(ctx, academicYearID); err != nil {
		return nil, err
	}
	return s.academicRepo.GetSemestersByYear(ctx, academicYearID)
}

// GetAcademicYear retrieves one academic year
func (s *AcademicService) GetAcademicYear(ctx context.Context, yearID int64) (*models.AcademicYear, error) {
	return s.academicRepo.GetYearByID(ctx, yearID)
}

// GetSemester retrieves one semester with its year relation
func (s *AcademicService) GetSemester(ctx context.Context, semesterID int64) (*models.Semester, error) {
	return s.academicRepo.GetSemesterByID(ctx, semesterID)
}

// GetDepartments lists all departments
func (s *AcademicService) GetDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// GetCoursesByDepartment lists the courses of one department
func (s *AcademicService) GetCoursesByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	if _, err := s.departmentRepo.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}
	return s.courseRepo.GetByDepartment(ctx, departmentID)
}

// CreateCourseAssignment assigns a professor to a course for a semester,
// creates the submission slots for the required documents, and provisions
// the course folders. Provisioning is best effort: a storage failure leaves
// the assignment in place and is repaired by the next upload.
func (s *AcademicService) CreateCourseAssignment(ctx context.Context, req *dto.CreateCourseAssignmentRequest, dueDate *time.Time) (*dto.CourseAssignmentResponse, error) {
	assignment := &models.CourseAssignment{
		CourseID:        req.CourseID,
		ProfessorUserID: req.ProfessorUserID,
		SemesterID:      req.SemesterID,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	// Reload with relations for provisioning.
	full, err := s.assignmentRepo.GetByID(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}

	for _, docType := range RequiredDocumentTypes {
		submission := &models.DocumentSubmission{
			CourseAssignmentID: full.ID,
			DocumentType:       docType,
			DueDate:            dueDate,
		}
		if err := s.submissionRepo.Create(ctx, submission); err != nil {
			logger.Warn().Err(err).Int64("assignmentID", full.ID).Str("docType", string(docType)).
				Msg("Failed to create submission slot")
		}
	}

	resp := dto.FromCourseAssignment(full)
	provision, err := s.folders.ProvisionCourseFolders(ctx, full)
	if err != nil {
		logger.Error().Err(err).Int64("assignmentID", full.ID).Msg("Folder provisioning failed")
	} else {
		resp.Provisioning = provision
	}

	return &resp, nil
}

// GetSubmissions lists the submission slots of one course assignment
func (s *AcademicService) GetSubmissions(ctx context.Context, assignmentID int64) ([]dto.SubmissionResponse, error) {
	if _, err := s.assignmentRepo.GetByID(ctx, assignmentID); err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.GetByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		responses = append(responses, dto.FromSubmission(sub, now))
	}
	return responses, nil
}
