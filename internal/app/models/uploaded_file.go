package models

import "time"

// UploadedFile is the database record for a stored document. FileURL is the
// slash-separated path of the file under the uploads root; StoredFilename is
// the on-disk name, which may differ from FileName when deduplication added
// a numeric suffix.
type UploadedFile struct {
	ID             int64         `json:"id" db:"id"`
	FolderID       *int64        `json:"folderId,omitempty" db:"folder_id"` // nullable: orphaned files have no folder row
	FileName       string        `json:"fileName" db:"file_name"`
	StoredFilename string        `json:"storedFilename" db:"stored_filename"`
	FileURL        string        `json:"fileUrl" db:"file_url"`
	FileSize       int64         `json:"fileSize" db:"file_size"`
	MimeType       string        `json:"mimeType" db:"mime_type"`
	DocumentType   *DocumentType `json:"documentType,omitempty" db:"document_type"` // nullable for files in custom folders
	UploadedBy     int64         `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}
