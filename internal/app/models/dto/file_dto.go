package dto

import (
	"time"

	"github.com/alquds/archivesystem/internal/app/models"
)

// UploadedFileResponse represents a stored file record.
type UploadedFileResponse struct {
	ID             int64     `json:"id"`
	FileName       string    `json:"fileName"`
	StoredFilename string    `json:"storedFilename"`
	FileURL        string    `json:"fileUrl"`
	FileSize       int64     `json:"fileSize"`
	MimeType       string    `json:"mimeType"`
	DocumentType   *string   `json:"documentType,omitempty"`
	UploadedBy     int64     `json:"uploadedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FromUploadedFile converts an uploaded file model to its response form.
func FromUploadedFile(f *models.UploadedFile) UploadedFileResponse {
	if f == nil {
		return UploadedFileResponse{}
	}
	resp := UploadedFileResponse{
		ID:             f.ID,
		FileName:       f.FileName,
		StoredFilename: f.StoredFilename,
		FileURL:        f.FileURL,
		FileSize:       f.FileSize,
		MimeType:       f.MimeType,
		UploadedBy:     f.UploadedBy,
		CreatedAt:      f.CreatedAt,
	}
	if f.DocumentType != nil {
		dt := string(*f.DocumentType)
		resp.DocumentType = &dt
	}
	return resp
}
