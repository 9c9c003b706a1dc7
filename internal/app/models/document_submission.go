package models

import "time"

// DocumentSubmission tracks one required document for a course assignment:
// which type is due, when, and whether it has been uploaded.
type DocumentSubmission struct {
	ID                 int64            `json:"id" db:"id"`
	CourseAssignmentID int64            `json:"courseAssignmentId" db:"course_assignment_id"`
	DocumentType       DocumentType     `json:"documentType" db:"document_type"`
	FileID             *int64           `json:"fileId,omitempty" db:"file_id"` // set once a file has been submitted
	DueDate            *time.Time       `json:"dueDate,omitempty" db:"due_date"`
	SubmittedAt        *time.Time       `json:"submittedAt,omitempty" db:"submitted_at"`
	CreatedAt          time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Assignment *CourseAssignment `json:"assignment,omitempty"`
	File       *UploadedFile     `json:"file,omitempty"`
}

// Status derives the submission state at the given instant.
func (s *DocumentSubmission) Status(now time.Time) SubmissionStatus {
	if s.SubmittedAt != nil {
		return SubmissionUploaded
	}
	if s.DueDate != nil && now.After(*s.DueDate) {
		return SubmissionOverdue
	}
	return SubmissionNotUploaded
}

// IsLate reports whether the submission arrived after its due date.
func (s *DocumentSubmission) IsLate() bool {
	return s.SubmittedAt != nil && s.DueDate != nil && s.SubmittedAt.After(*s.DueDate)
}
