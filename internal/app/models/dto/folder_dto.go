package dto

import (
	"time"

	"github.com/alquds/archivesystem/internal/app/models"
)

// CreateCustomFolderRequest asks for a custom folder under a course.
type CreateCustomFolderRequest struct {
	Path       string `json:"path" binding:"required" example:"2024-2025/first/PROF123/CS101 - Introduction to Computer Science"`
	FolderName string `json:"folderName" binding:"required" example:"Field Trip Reports"`
}

// DeleteFolderRequest names the custom folder to remove.
type DeleteFolderRequest struct {
	FolderPath string `json:"folderPath" binding:"required"`
}

// DeleteFolderResult reports what a folder deletion removed.
type DeleteFolderResult struct {
	DeletedPath       string `json:"deletedPath"`
	FilesDeleted      int64  `json:"filesDeleted"`
	SubfoldersDeleted int64  `json:"subfoldersDeleted"`
}

// FolderResponse represents a folder record.
type FolderResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Type      string    `json:"type" example:"CUSTOM"`
	ParentID  *int64    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromFolder converts a folder model to its response form.
func FromFolder(f *models.Folder) FolderResponse {
	if f == nil {
		return FolderResponse{}
	}
	return FolderResponse{
		ID:        f.ID,
		Name:      f.Name,
		Path:      f.Path,
		Type:      string(f.Type),
		ParentID:  f.ParentID,
		CreatedAt: f.CreatedAt,
	}
}

// ProvisionResult reports what folder provisioning created versus found
// already in place.
type ProvisionResult struct {
	CoursePath     string   `json:"coursePath"`
	CreatedPaths   []string `json:"createdPaths"`
	ExistingPaths  []string `json:"existingPaths"`
	AlreadyExisted bool     `json:"alreadyExisted"`
}

// SemesterProvisionResult aggregates provisioning across every course
// assignment in a semester.
type SemesterProvisionResult struct {
	SemesterPath string            `json:"semesterPath"`
	Courses      []ProvisionResult `json:"courses"`
}
