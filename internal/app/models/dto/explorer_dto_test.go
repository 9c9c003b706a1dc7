package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplorerNodeChildrenSerialization(t *testing.T) {
	// An expanded empty folder carries an empty children array.
	expanded := ExplorerNode{Name: "Exams", IsDirectory: true, Children: []ExplorerNode{}}
	body, err := json.Marshal(expanded)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"children":[]`)

	// Unexpanded nodes and files leave children null.
	file := ExplorerNode{Name: "a.pdf"}
	body, err = json.Marshal(file)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"children":null`)
}
