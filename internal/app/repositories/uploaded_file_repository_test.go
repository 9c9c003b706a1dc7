package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-2025/first/prof_7", `2024-2025/first/prof\_7`},
		{"CS101_A - Systems", `CS101\_A - Systems`},
		{"100% final", `100\% final`},
		{`back\slash`, `back\\slash`},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLikePattern(tt.in), tt.in)
	}
}
