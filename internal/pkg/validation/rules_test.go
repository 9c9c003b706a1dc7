package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidFolderName(t *testing.T) {
	valid := []string{"Research", "Old Exams", "2023 archive", "notes-v2", "  trimmed  "}
	for _, name := range valid {
		assert.True(t, IsValidFolderName(name), name)
	}

	invalid := []string{
		"",
		"   ",
		".",
		"..",
		"bad/name",
		`bad\name`,
		"bad:name",
		"bad|name",
		"bad?name",
		strings.Repeat("a", FolderNameMaxLength+1),
	}
	for _, name := range invalid {
		assert.False(t, IsValidFolderName(name), name)
	}
}

func TestCompiledPatterns(t *testing.T) {
	assert.True(t, CompiledPatterns.ProfessorIdentifier.MatchString("prof_42"))
	assert.False(t, CompiledPatterns.ProfessorIdentifier.MatchString("prof_"))
	assert.False(t, CompiledPatterns.ProfessorIdentifier.MatchString("professor_42"))

	assert.True(t, CompiledPatterns.YearCode.MatchString("2024-2025"))
	assert.False(t, CompiledPatterns.YearCode.MatchString("24-25"))

	assert.True(t, CompiledPatterns.Email.MatchString("jsmith@alquds.edu"))
	assert.False(t, CompiledPatterns.Email.MatchString("not-an-email"))
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("hello").WithMinLength(2).WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("h").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("").Validate(), "required by default")
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.True(t, NewStringValidation("prof_9").WithPattern(CompiledPatterns.ProfessorIdentifier).Validate())
	assert.False(t, NewStringValidation("nope").WithPattern(CompiledPatterns.ProfessorIdentifier).Validate())
}
