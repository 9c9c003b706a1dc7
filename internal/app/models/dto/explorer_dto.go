package dto

import "time"

// NodePermissions are the caller's effective rights on a single node.
type NodePermissions struct {
	CanRead   bool `json:"canRead"`
	CanWrite  bool `json:"canWrite"`
	CanDelete bool `json:"canDelete"`
}

// ExplorerNode is one entry in a directory listing or tree: a folder or a
// file, described uniformly.
type ExplorerNode struct {
	Name        string          `json:"name" example:"CS101 - Introduction to Computer Science"`
	Path        string          `json:"path" example:"2024-2025/first/PROF123/CS101 - Introduction to Computer Science"`
	IsDirectory bool            `json:"isDirectory"`
	NodeType    string          `json:"nodeType" example:"COURSE"` // YEAR, SEMESTER, PROFESSOR, COURSE, DOCUMENT_TYPE, CUSTOM or FILE
	Size        int64           `json:"size"`
	ModifiedAt  *time.Time      `json:"modifiedAt,omitempty"`
	Permissions NodePermissions `json:"permissions"`

	// File-only metadata
	DocumentType   *string `json:"documentType,omitempty" example:"EXAM"`
	UploadedBy     *int64  `json:"uploadedBy,omitempty"`
	UploadedByName string  `json:"uploadedByName,omitempty"`
	FileID         *int64  `json:"fileId,omitempty"`
	Orphaned       bool    `json:"orphaned,omitempty"` // present on disk with no matching database record

	// Populated when the node was expanded: nil (serialized as null) on
	// unexpanded nodes and files, an empty list on an expanded empty folder.
	Children  []ExplorerNode `json:"children"`
	FileCount *int           `json:"fileCount,omitempty"`
}

// BreadcrumbItem is one link in the path back to the archive root.
type BreadcrumbItem struct {
	Name string `json:"name" example:"2024-2025"`
	Path string `json:"path" example:"2024-2025"`
}

// DirectoryListingResponse is a paginated view of one directory.
type DirectoryListingResponse struct {
	Path        string           `json:"path"`
	Breadcrumbs []BreadcrumbItem `json:"breadcrumbs"`
	Items       []ExplorerNode   `json:"items"`
	Pagination  PaginationInfo   `json:"pagination"`
	ETag        string           `json:"etag" example:"W/\"a1b2c3d4e5f6\""`
}

// TreeResponse is a nested view of a directory subtree.
type TreeResponse struct {
	Root  ExplorerNode `json:"root"`
	Depth int          `json:"depth"`
	ETag  string       `json:"etag"`
}

// ChangeCheckResponse reports whether a directory changed relative to a
// client-supplied ETag.
type ChangeCheckResponse struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	ETag    string `json:"etag"`
}

// ExistsResponse reports whether a path exists and what it is.
type ExistsResponse struct {
	Path        string `json:"path"`
	Exists      bool   `json:"exists"`
	IsDirectory bool   `json:"isDirectory"`
}
