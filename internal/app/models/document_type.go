package models

import "strings"

// DocumentType classifies the documents a professor submits for a course
type DocumentType string

const (
	DocumentTypeSyllabus     DocumentType = "SYLLABUS"
	DocumentTypeExam         DocumentType = "EXAM"
	DocumentTypeLectureNotes DocumentType = "LECTURE_NOTES"
	DocumentTypeAssignment   DocumentType = "ASSIGNMENT"
	DocumentTypeProjectDocs  DocumentType = "PROJECT_DOCS"
	DocumentTypeOther        DocumentType = "OTHER"
)

// StandardSubfolders lists the folders provisioned under every course, in
// display order.
var StandardSubfolders = []string{"Syllabus", "Exams", "Course Notes", "Assignments"}

// documentTypeAliases maps normalized folder tokens to document types.
// Tokens are normalized by lowercasing and turning '-'/'_' into spaces, so
// "Course_Notes", "course-notes" and "Course Notes" all resolve the same way.
var documentTypeAliases = map[string]DocumentType{
	"syllabus":      DocumentTypeSyllabus,
	"exam":          DocumentTypeExam,
	"exams":         DocumentTypeExam,
	"course notes":  DocumentTypeLectureNotes,
	"lecture notes": DocumentTypeLectureNotes,
	"assignment":    DocumentTypeAssignment,
	"assignments":   DocumentTypeAssignment,
	"project docs":  DocumentTypeProjectDocs,
}

// ParseDocumentFolderToken resolves a course-subfolder name to its document
// type. Unknown names are custom folders, signalled by a false second value.
func ParseDocumentFolderToken(token string) (DocumentType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.ReplaceAll(normalized, "_", " ")
	normalized = strings.Join(strings.Fields(normalized), " ")
	dt, ok := documentTypeAliases[normalized]
	return dt, ok
}

// IsReservedFolderName reports whether a folder name collides with a
// document-type folder. Custom folders may not shadow these.
func IsReservedFolderName(name string) bool {
	_, ok := ParseDocumentFolderToken(name)
	return ok
}

// FolderName returns the canonical subfolder name for a document type, or ""
// for types that have no dedicated folder.
func (dt DocumentType) FolderName() string {
	switch dt {
	case DocumentTypeSyllabus:
		return "Syllabus"
	case DocumentTypeExam:
		return "Exams"
	case DocumentTypeLectureNotes:
		return "Course Notes"
	case DocumentTypeAssignment:
		return "Assignments"
	case DocumentTypeProjectDocs:
		return "Project Docs"
	}
	return ""
}

// IsValidDocumentType reports whether s is one of the known document types.
func IsValidDocumentType(s string) bool {
	switch DocumentType(s) {
	case DocumentTypeSyllabus, DocumentTypeExam, DocumentTypeLectureNotes,
		DocumentTypeAssignment, DocumentTypeProjectDocs, DocumentTypeOther:
		return true
	}
	return false
}
