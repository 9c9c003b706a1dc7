package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemesterToken(t *testing.T) {
	tests := []struct {
		token string
		want  SemesterTerm
		ok    bool
	}{
		{"first", TermFirst, true},
		{"FIRST", TermFirst, true},
		{"fall", TermFirst, true},
		{"1", TermFirst, true},
		{"second", TermSecond, true},
		{"spring", TermSecond, true},
		{"2", TermSecond, true},
		{" summer ", TermSummer, true},
		{"winter", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSemesterToken(tt.token)
		assert.Equal(t, tt.ok, ok, tt.token)
		assert.Equal(t, tt.want, got, tt.token)
	}
}

func TestSemesterFolderPath(t *testing.T) {
	semester := &Semester{
		Term:         TermFirst,
		AcademicYear: &AcademicYear{YearCode: "2024-2025"},
	}
	assert.Equal(t, "2024-2025/first", semester.FolderPath())
}

func TestParseDocumentFolderToken(t *testing.T) {
	tests := []struct {
		token string
		want  DocumentType
		ok    bool
	}{
		{"Syllabus", DocumentTypeSyllabus, true},
		{"Exams", DocumentTypeExam, true},
		{"exam", DocumentTypeExam, true},
		{"Course Notes", DocumentTypeLectureNotes, true},
		{"course_notes", DocumentTypeLectureNotes, true},
		{"lecture-notes", DocumentTypeLectureNotes, true},
		{"Assignments", DocumentTypeAssignment, true},
		{"Project Docs", DocumentTypeProjectDocs, true},
		{"My Stuff", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDocumentFolderToken(tt.token)
		assert.Equal(t, tt.ok, ok, tt.token)
		assert.Equal(t, tt.want, got, tt.token)
	}
}

func TestDocumentTypeFolderNameRoundTrip(t *testing.T) {
	for _, dt := range []DocumentType{
		DocumentTypeSyllabus, DocumentTypeExam,
		DocumentTypeLectureNotes, DocumentTypeAssignment, DocumentTypeProjectDocs,
	} {
		name := dt.FolderName()
		require.NotEmpty(t, name, string(dt))
		parsed, ok := ParseDocumentFolderToken(name)
		require.True(t, ok, name)
		assert.Equal(t, dt, parsed, name)
	}

	assert.Empty(t, DocumentTypeOther.FolderName())
}

func TestIsReservedFolderName(t *testing.T) {
	assert.True(t, IsReservedFolderName("Exams"))
	assert.True(t, IsReservedFolderName("syllabus"))
	assert.False(t, IsReservedFolderName("Research"))
}

func TestSanitizeFolderToken(t *testing.T) {
	assert.Equal(t, "CS101 - Intro", SanitizeFolderToken("CS101 - Intro"))
	assert.Equal(t, "a_b_c", SanitizeFolderToken(`a/b\c`))
	assert.Equal(t, "one two", SanitizeFolderToken("one    two"))
	assert.Equal(t, "x_y", SanitizeFolderToken(`x?*<>|y`))
	assert.Equal(t, "trimmed", SanitizeFolderToken("  trimmed  "))
}

func TestUserFolderName(t *testing.T) {
	legacy := "PROF123"
	withLegacy := &User{ID: 7, ProfessorID: &legacy}
	assert.Equal(t, "PROF123", withLegacy.FolderName())

	plain := &User{ID: 7}
	assert.Equal(t, "prof_7", plain.FolderName())
	assert.Equal(t, "prof_7", plain.ProfessorToken())

	empty := ""
	blankLegacy := &User{ID: 9, ProfessorID: &empty}
	assert.Equal(t, "prof_9", blankLegacy.FolderName())
}

func TestUserNames(t *testing.T) {
	u := &User{FirstName: "Layla", LastName: "Haddad"}
	assert.Equal(t, "Layla Haddad", u.FullName())
	assert.Equal(t, "Layla Haddad", u.SanitizedFullName())
}

func TestCourseFolderName(t *testing.T) {
	c := &Course{Code: "CS101", Name: "Introduction to Computer Science"}
	assert.Equal(t, "CS101 - Introduction to Computer Science", c.FolderName())

	odd := &Course{Code: "CS/2", Name: "Systems: Advanced"}
	assert.Equal(t, "CS_2 - Systems_ Advanced", odd.FolderName())
}

func TestRoleAndDocumentTypeValidation(t *testing.T) {
	assert.True(t, IsValidRole("ADMIN"))
	assert.True(t, IsValidRole("PROFESSOR"))
	assert.False(t, IsValidRole("STUDENT"))

	assert.True(t, IsValidDocumentType("SYLLABUS"))
	assert.True(t, IsValidDocumentType("OTHER"))
	assert.False(t, IsValidDocumentType("THESIS"))
}
