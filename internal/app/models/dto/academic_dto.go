package dto

import (
	"time"

	"github.com/alquds/archivesystem/internal/app/models"
)

// AcademicYearResponse represents an academic year.
type AcademicYearResponse struct {
	ID       int64  `json:"id"`
	YearCode string `json:"yearCode" example:"2024-2025"`
	IsActive bool   `json:"isActive"`
}

// SemesterResponse represents a semester within a year.
type SemesterResponse struct {
	ID             int64  `json:"id"`
	AcademicYearID int64  `json:"academicYearId"`
	Term           string `json:"term" example:"FIRST"`
	YearCode       string `json:"yearCode,omitempty"`
}

// CreateCourseAssignmentRequest assigns a professor to a course for a
// semester. Provisioning of the course folders happens as a side effect.
type CreateCourseAssignmentRequest struct {
	CourseID        int64      `json:"courseId" binding:"required,min=1"`
	ProfessorUserID int64      `json:"professorUserId" binding:"required,min=1"`
	SemesterID      int64      `json:"semesterId" binding:"required,min=1"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
}

// CourseAssignmentResponse represents a course assignment, optionally with
// the provisioning outcome when the assignment was just created.
type CourseAssignmentResponse struct {
	ID              int64            `json:"id"`
	CourseID        int64            `json:"courseId"`
	ProfessorUserID int64            `json:"professorUserId"`
	SemesterID      int64            `json:"semesterId"`
	CreatedAt       time.Time        `json:"createdAt"`
	Provisioning    *ProvisionResult `json:"provisioning,omitempty"`
}

// SubmissionResponse represents the state of one required document.
type SubmissionResponse struct {
	ID                 int64      `json:"id"`
	CourseAssignmentID int64      `json:"courseAssignmentId"`
	DocumentType       string     `json:"documentType" example:"SYLLABUS"`
	Status             string     `json:"status" example:"NOT_UPLOADED"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	SubmittedAt        *time.Time `json:"submittedAt,omitempty"`
	IsLate             bool       `json:"isLate"`
	FileID             *int64     `json:"fileId,omitempty"`
}

// FromAcademicYear converts an academic year model to its response form.
func FromAcademicYear(y *models.AcademicYear) AcademicYearResponse {
	if y == nil {
		return AcademicYearResponse{}
	}
	return AcademicYearResponse{ID: y.ID, YearCode: y.YearCode, IsActive: y.IsActive}
}

// FromSemester converts a semester model to its response form.
func FromSemester(s *models.Semester) SemesterResponse {
	if s == nil {
		return SemesterResponse{}
	}
	resp := SemesterResponse{
		ID:             s.ID,
		AcademicYearID: s.AcademicYearID,
		Term:           string(s.Term),
	}
	if s.AcademicYear != nil {
		resp.YearCode = s.AcademicYear.YearCode
	}
	return resp
}

// FromCourseAssignment converts a course assignment model to its response form.
func FromCourseAssignment(a *models.CourseAssignment) CourseAssignmentResponse {
	if a == nil {
		return CourseAssignmentResponse{}
	}
	return CourseAssignmentResponse{
		ID:              a.ID,
		CourseID:        a.CourseID,
		ProfessorUserID: a.ProfessorUserID,
		SemesterID:      a.SemesterID,
		CreatedAt:       a.CreatedAt,
	}
}

// FromSubmission converts a submission model to its response form, deriving
// the status at the given instant.
func FromSubmission(s *models.DocumentSubmission, now time.Time) SubmissionResponse {
	if s == nil {
		return SubmissionResponse{}
	}
	return SubmissionResponse{
		ID:                 s.ID,
		CourseAssignmentID: s.CourseAssignmentID,
		DocumentType:       string(s.DocumentType),
		Status:             string(s.Status(now)),
		DueDate:            s.DueDate,
		SubmittedAt:        s.SubmittedAt,
		IsLate:             s.IsLate(),
		FileID:             s.FileID,
	}
}
