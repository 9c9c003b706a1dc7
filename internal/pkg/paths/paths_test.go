package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alquds/archivesystem/internal/pkg/apperrors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"root slash", "/", ""},
		{"leading slash", "/2024-2025", "2024-2025"},
		{"trailing slash", "2024-2025/", "2024-2025"},
		{"backslashes", "2024-2025\\FIRST\\prof_7", "2024-2025/FIRST/prof_7"},
		{"repeated slashes", "2024-2025//FIRST///prof_7", "2024-2025/FIRST/prof_7"},
		{"surrounding whitespace", "  2024-2025/FIRST  ", "2024-2025/FIRST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestValidateSyntax(t *testing.T) {
	valid := []string{"", "/", "2024-2025", "2024-2025/FIRST/prof_7/CS101 - Intro"}
	for _, p := range valid {
		assert.NoError(t, ValidateSyntax(p), p)
	}

	invalid := []string{
		"../etc/passwd",
		"2024-2025/../../secret",
		"2024-2025/./FIRST",
		"C:/Windows",
		"2024-2025/FIRST/bad|name",
		"2024-2025/FIRST/bad?name",
		"2024-2025/\x00",
	}
	for _, p := range invalid {
		err := ValidateSyntax(p)
		require.Error(t, err, p)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidPath), p)
	}
}

func TestParse(t *testing.T) {
	root, err := Parse("/")
	require.NoError(t, err)
	assert.Equal(t, KindRoot, root.Kind)
	assert.True(t, root.IsRoot())
	assert.Equal(t, 0, root.Depth())

	info, err := Parse("/2024-2025/FIRST/prof_7/CS101 - Intro/Exams")
	require.NoError(t, err)
	assert.Equal(t, KindSubfolder, info.Kind)
	assert.Equal(t, "2024-2025", info.YearCode)
	assert.Equal(t, "FIRST", info.SemesterToken)
	assert.Equal(t, "prof_7", info.ProfessorIdentifier)
	assert.Equal(t, "CS101 - Intro", info.CourseFolderName)
	assert.Equal(t, "Exams", info.SubfolderName)
	assert.Equal(t, "2024-2025/FIRST/prof_7", info.ProfessorScope())

	deep, err := Parse("2024-2025/FIRST/prof_7/CS101/Exams/midterm.pdf")
	require.NoError(t, err)
	assert.Equal(t, KindEntry, deep.Kind)

	_, err = Parse("../escape")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidPath))
}

func TestParseKindPerDepth(t *testing.T) {
	tests := []struct {
		path string
		kind NodeKind
	}{
		{"2024-2025", KindYear},
		{"2024-2025/FIRST", KindSemester},
		{"2024-2025/FIRST/prof_7", KindProfessor},
		{"2024-2025/FIRST/prof_7/CS101 - Intro", KindCourse},
	}
	for _, tt := range tests {
		info, err := Parse(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.kind, info.Kind, tt.path)
	}
}

func TestResolverRejectsEscapes(t *testing.T) {
	r, err := NewResolver(t.TempDir())
	require.NoError(t, err)

	_, err = r.Resolve("../outside")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidPath))

	_, err = r.Resolve("a/../../outside")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidPath))

	resolved, err := r.Resolve("2024-2025/FIRST")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Root(), "2024-2025", "FIRST"), resolved)
}

func TestResolverRoundTrip(t *testing.T) {
	r, err := NewResolver(t.TempDir())
	require.NoError(t, err)

	abs, err := r.EnsureDir("2024-2025/FIRST/prof_7")
	require.NoError(t, err)

	rel, err := r.ToRelative(abs)
	require.NoError(t, err)
	assert.Equal(t, "2024-2025/FIRST/prof_7", rel)

	rootRel, err := r.ToRelative(r.Root())
	require.NoError(t, err)
	assert.Equal(t, "", rootRel)

	_, err = r.ToRelative(filepath.Dir(r.Root()))
	assert.Error(t, err)
}

func TestResolveExisting(t *testing.T) {
	r, err := NewResolver(t.TempDir())
	require.NoError(t, err)

	_, err = r.ResolveExisting("2024-2025")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidPath))

	_, err = r.EnsureDir("2024-2025")
	require.NoError(t, err)

	abs, err := r.ResolveExistingDir("2024-2025")
	require.NoError(t, err)
	assert.NotEmpty(t, abs)
}

func TestParentAndBaseName(t *testing.T) {
	assert.Equal(t, "", ParentPath("2024-2025"))
	assert.Equal(t, "2024-2025/FIRST", ParentPath("2024-2025/FIRST/prof_7"))
	assert.Equal(t, "prof_7", BaseName("2024-2025/FIRST/prof_7"))
	assert.Equal(t, "2024-2025", BaseName("/2024-2025/"))
	assert.Equal(t, "", ParentPath(""))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "2024-2025/FIRST", Join("2024-2025", "FIRST"))
	assert.Equal(t, "FIRST", Join("", "FIRST"))
	assert.Equal(t, "2024-2025", Join("/2024-2025/", ""))
}
