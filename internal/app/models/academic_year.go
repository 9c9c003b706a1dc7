package models

import "time"

// AcademicYear represents one academic year, identified by a code such as
// "2024-2025" which also names the year's folder in the explorer tree.
type AcademicYear struct {
	ID        int64     `json:"id" db:"id"`
	YearCode  string    `json:"yearCode" db:"year_code" example:"2024-2025"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Semester represents a term within an academic year.
type Semester struct {
	ID             int64        `json:"id" db:"id"`
	AcademicYearID int64        `json:"academicYearId" db:"academic_year_id"`
	Term           SemesterTerm `json:"term" db:"term" example:"FIRST"`

	AcademicYear *AcademicYear `json:"academicYear,omitempty"` // Relation, no db tag
}

// FolderPath returns the explorer path for this semester, given its year.
func (s *Semester) FolderPath() string {
	if s.AcademicYear == nil {
		return ""
	}
	return s.AcademicYear.YearCode + "/" + s.Term.FolderToken()
}
