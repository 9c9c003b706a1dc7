package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`                                                   // Unique identifier for the user
	Email        string     `json:"email" db:"email" example:"jsmith@alquds.edu"`                             // User's email address
	Password     string     `json:"-" db:"password"`                                                          // User's hashed password (excluded from JSON)
	FirstName    string     `json:"firstName" db:"first_name" example:"John"`                                 // User's first name
	LastName     string     `json:"lastName" db:"last_name" example:"Smith"`                                  // User's last name
	Role         UserRole   `json:"role" db:"role" example:"PROFESSOR"`                                       // User's role (ADMIN, DEAN, HOD or PROFESSOR)
	DepartmentID *int64     `json:"departmentId,omitempty" db:"department_id" example:"3"`                    // Department the user belongs to (nullable for ADMIN/DEAN)
	ProfessorID  *string    `json:"professorId,omitempty" db:"professor_id" example:"PROF123"`                // Legacy registrar identifier (nullable)
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`                                   // Whether the user account is active
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                 // Timestamp when the user was created
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                 // Timestamp when the user was last updated
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"`  // Timestamp of the last login (nullable)

	Department *Department `json:"department,omitempty"` // Relation, no db tag
}

var (
	folderUnsafeChars   = regexp.MustCompile(`[\\/:*?"<>|]`)
	collapseWhitespace  = regexp.MustCompile(`\s+`)
	collapseUnderscores = regexp.MustCompile(`_+`)
)

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// FolderName returns the name of this professor's folder in the explorer
// tree: the "prof_<id>" token when no legacy identifier exists, otherwise
// the legacy identifier itself.
func (u *User) FolderName() string {
	if u.ProfessorID != nil && *u.ProfessorID != "" {
		return *u.ProfessorID
	}
	return u.ProfessorToken()
}

// ProfessorToken returns the synthetic "prof_<id>" identifier.
func (u *User) ProfessorToken() string {
	return "prof_" + strconv.FormatInt(u.ID, 10)
}

// SanitizedFullName reduces the full name to a string safe to compare with a
// folder name: filesystem-hostile characters become underscores and runs of
// whitespace or underscores collapse.
func (u *User) SanitizedFullName() string {
	return SanitizeFolderToken(u.FullName())
}

// SanitizeFolderToken applies the folder-name sanitization used when matching
// professor identifiers against directory names.
func SanitizeFolderToken(s string) string {
	out := folderUnsafeChars.ReplaceAllString(s, "_")
	out = collapseWhitespace.ReplaceAllString(out, " ")
	out = collapseUnderscores.ReplaceAllString(out, "_")
	return strings.TrimSpace(out)
}
