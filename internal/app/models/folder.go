package models

import "time"

// FolderType identifies what level of the archive hierarchy a folder row
// represents.
type FolderType string

const (
	FolderTypeYear         FolderType = "YEAR"
	FolderTypeSemester     FolderType = "SEMESTER"
	FolderTypeProfessor    FolderType = "PROFESSOR"
	FolderTypeCourse       FolderType = "COURSE"
	FolderTypeDocumentType FolderType = "DOCUMENT_TYPE"
	FolderTypeCustom       FolderType = "CUSTOM"
)

// Folder is the database record backing a directory in the archive. Path is
// the normalized slash-separated path relative to the uploads root and is
// unique across the table.
type Folder struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Path        string     `json:"path" db:"path"`
	Type        FolderType `json:"type" db:"folder_type"`
	ParentID    *int64     `json:"parentId,omitempty" db:"parent_id"`
	OwnerUserID *int64     `json:"ownerUserId,omitempty" db:"owner_user_id"` // professor that owns the subtree, nullable above professor level
	CourseID    *int64     `json:"courseId,omitempty" db:"course_id"`        // set for COURSE folders and their children
	SemesterID  *int64     `json:"semesterId,omitempty" db:"semester_id"`    // set from the professor level down
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
