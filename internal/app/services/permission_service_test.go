package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alquds/archivesystem/internal/app/models"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/pkg/paths"
)

func TestDecide(t *testing.T) {
	full := dto.NodePermissions{CanRead: true, CanWrite: true, CanDelete: true}
	readOnly := dto.NodePermissions{CanRead: true}
	none := dto.NodePermissions{}

	tests := []struct {
		name     string
		role     models.UserRole
		relation OwnerRelation
		want     dto.NodePermissions
	}{
		{"admin shallow", models.RoleAdmin, RelationShallow, full},
		{"admin own", models.RoleAdmin, RelationOwn, full},
		{"admin other department", models.RoleAdmin, RelationOtherDepartment, full},
		{"admin unknown owner", models.RoleAdmin, RelationUnknownOwner, full},

		{"dean shallow", models.RoleDean, RelationShallow, readOnly},
		{"dean own", models.RoleDean, RelationOwn, readOnly},
		{"dean same department", models.RoleDean, RelationSameDepartment, readOnly},
		{"dean other department", models.RoleDean, RelationOtherDepartment, readOnly},
		{"dean unknown owner", models.RoleDean, RelationUnknownOwner, readOnly},

		{"hod shallow", models.RoleHOD, RelationShallow, readOnly},
		{"hod own", models.RoleHOD, RelationOwn, full},
		{"hod same department", models.RoleHOD, RelationSameDepartment, readOnly},
		{"hod other department", models.RoleHOD, RelationOtherDepartment, none},
		{"hod unknown owner", models.RoleHOD, RelationUnknownOwner, none},

		{"professor shallow", models.RoleProfessor, RelationShallow, readOnly},
		{"professor own", models.RoleProfessor, RelationOwn, full},
		{"professor same department", models.RoleProfessor, RelationSameDepartment, readOnly},
		{"professor other department", models.RoleProfessor, RelationOtherDepartment, none},
		{"professor unknown owner", models.RoleProfessor, RelationUnknownOwner, none},

		{"unknown role", models.UserRole("GUEST"), RelationShallow, none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.role, tt.relation))
		})
	}
}

func TestDeletableKind(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{"2024-2025", false},
		{"2024-2025/first", false},
		{"2024-2025/first/prof_7", false},
		{"2024-2025/first/prof_7/CS101 - Intro", false},
		{"2024-2025/first/prof_7/CS101 - Intro/Exams", false},
		{"2024-2025/first/prof_7/CS101 - Intro/Course_Notes", false},
		{"2024-2025/first/prof_7/CS101 - Intro/Research", true},
		{"2024-2025/first/prof_7/CS101 - Intro/Exams/midterm.pdf", true},
		{"2024-2025/first/prof_7/CS101 - Intro/Research/notes.pdf", true},
	}
	for _, tt := range tests {
		info, err := paths.Parse(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, DeletableKind(info), tt.path)
	}
}

func TestOwnCourseFolderIsNotDeletable(t *testing.T) {
	// The role table grants delete on owned subtrees, but the kind gate in
	// Evaluate keeps it off everything except files and custom folders.
	perms := Decide(models.RoleProfessor, RelationOwn)
	require.True(t, perms.CanDelete)

	courseInfo, err := paths.Parse("2024-2025/first/prof_7/CS101 - Intro")
	require.NoError(t, err)
	assert.False(t, perms.CanDelete && DeletableKind(courseInfo))

	fileInfo, err := paths.Parse("2024-2025/first/prof_7/CS101 - Intro/Exams/midterm.pdf")
	require.NoError(t, err)
	assert.True(t, perms.CanDelete && DeletableKind(fileInfo))
}

func TestParseProfToken(t *testing.T) {
	id, ok := parseProfToken("prof_42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"prof_", "prof_0", "prof_-1", "prof_abc", "PROF123", "42"} {
		_, ok := parseProfToken(bad)
		assert.False(t, ok, bad)
	}
}
