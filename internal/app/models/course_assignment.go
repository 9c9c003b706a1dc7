package models

import "time"

// CourseAssignment links a professor to a course for one semester. Creating
// an assignment is what triggers folder provisioning in the archive.
type CourseAssignment struct {
	ID              int64     `json:"id" db:"id"`
	CourseID        int64     `json:"courseId" db:"course_id"`
	ProfessorUserID int64     `json:"professorUserId" db:"professor_user_id"`
	SemesterID      int64     `json:"semesterId" db:"semester_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course    *Course   `json:"course,omitempty"`
	Professor *User     `json:"professor,omitempty"`
	Semester  *Semester `json:"semester,omitempty"`
}
