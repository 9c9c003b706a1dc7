package paths

import (
	"strings"

	"github.com/alquds/archivesystem/internal/pkg/apperrors"
)

// NodeKind identifies the level a path points at inside the explorer
// hierarchy. The kind is purely positional: the first segment is an academic
// year, the second a semester, and so on.
type NodeKind string

const (
	KindRoot      NodeKind = "ROOT"
	KindYear      NodeKind = "YEAR"
	KindSemester  NodeKind = "SEMESTER"
	KindProfessor NodeKind = "PROFESSOR"
	KindCourse    NodeKind = "COURSE"
	KindSubfolder NodeKind = "SUBFOLDER"
	KindEntry     NodeKind = "ENTRY"
)

// PathInfo is the positional breakdown of a normalized explorer path.
// Fields past the path's depth are left empty.
type PathInfo struct {
	Path     string
	Segments []string
	Kind     NodeKind

	YearCode            string
	SemesterToken       string
	ProfessorIdentifier string
	CourseFolderName    string
	SubfolderName       string
}

// Parse validates and breaks a raw explorer path into its positional parts.
func Parse(rawPath string) (PathInfo, error) {
	if err := ValidateSyntax(rawPath); err != nil {
		return PathInfo{}, err
	}

	normalized := Normalize(rawPath)
	if normalized == "" {
		return PathInfo{Path: "", Segments: nil, Kind: KindRoot}, nil
	}

	segments := strings.Split(normalized, "/")
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return PathInfo{}, apperrors.NewInvalidPathError("path contains an empty segment")
		}
	}

	info := PathInfo{Path: normalized, Segments: segments, Kind: kindForDepth(len(segments))}
	if len(segments) >= 1 {
		info.YearCode = segments[0]
	}
	if len(segments) >= 2 {
		info.SemesterToken = segments[1]
	}
	if len(segments) >= 3 {
		info.ProfessorIdentifier = segments[2]
	}
	if len(segments) >= 4 {
		info.CourseFolderName = segments[3]
	}
	if len(segments) >= 5 {
		info.SubfolderName = segments[4]
	}
	return info, nil
}

func kindForDepth(depth int) NodeKind {
	switch depth {
	case 0:
		return KindRoot
	case 1:
		return KindYear
	case 2:
		return KindSemester
	case 3:
		return KindProfessor
	case 4:
		return KindCourse
	case 5:
		return KindSubfolder
	default:
		return KindEntry
	}
}

// Depth returns the number of segments in the path; the root has depth 0.
func (p PathInfo) Depth() int {
	return len(p.Segments)
}

// IsRoot reports whether the path is the uploads root itself.
func (p PathInfo) IsRoot() bool {
	return p.Kind == KindRoot
}

// ProfessorScope returns the three-segment prefix ending at the professor
// segment, or "" when the path is too shallow to have one.
func (p PathInfo) ProfessorScope() string {
	if len(p.Segments) < 3 {
		return ""
	}
	return strings.Join(p.Segments[:3], "/")
}

// Join appends a child segment to a normalized path.
func Join(parent, child string) string {
	parent = Normalize(parent)
	child = Normalize(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "/" + child
}
