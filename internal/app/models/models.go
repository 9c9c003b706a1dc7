package models

import "strings"

// UserRole defines the user role type
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleDean      UserRole = "DEAN"
	RoleHOD       UserRole = "HOD"
	RoleProfessor UserRole = "PROFESSOR"
)

// IsValidRole reports whether s is one of the known roles.
func IsValidRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleDean, RoleHOD, RoleProfessor:
		return true
	}
	return false
}

// SemesterTerm represents a term within an academic year
type SemesterTerm string

const (
	TermFirst  SemesterTerm = "FIRST"
	TermSecond SemesterTerm = "SECOND"
	TermSummer SemesterTerm = "SUMMER"
)

// ParseSemesterToken maps a path segment ("first", "second", "summer",
// case-insensitive) to its term. The second return value is false for
// unknown tokens.
func ParseSemesterToken(token string) (SemesterTerm, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "first", "1", "fall":
		return TermFirst, true
	case "second", "2", "spring":
		return TermSecond, true
	case "summer":
		return TermSummer, true
	}
	return "", false
}

// FolderToken returns the lowercase path segment for a term.
func (t SemesterTerm) FolderToken() string {
	return strings.ToLower(string(t))
}

// SubmissionStatus tracks whether a required document has been handed in
type SubmissionStatus string

const (
	SubmissionNotUploaded SubmissionStatus = "NOT_UPLOADED"
	SubmissionOverdue     SubmissionStatus = "OVERDUE"
	SubmissionUploaded    SubmissionStatus = "UPLOADED"
)
