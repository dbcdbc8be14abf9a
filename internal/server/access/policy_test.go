package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipeonte/usernotes/internal/server/models"
)

func TestCanRead(t *testing.T) {
	note := &models.Note{ID: "n-1", Owner: "alice", SharedWith: []string{"bob"}}

	tests := []struct {
		requester string
		want      bool
	}{
		{"alice", true},
		{"bob", true},
		{"carol", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanRead(tt.requester, note), "requester %q", tt.requester)
	}
}

func TestCanWrite(t *testing.T) {
	note := &models.Note{ID: "n-1", Owner: "alice", SharedWith: []string{"bob"}}

	// read access does not imply write access
	assert.True(t, CanWrite("alice", note))
	assert.False(t, CanWrite("bob", note))
	assert.False(t, CanWrite("carol", note))
}

func TestCanRead_NoShares(t *testing.T) {
	note := &models.Note{ID: "n-2", Owner: "alice"}

	assert.True(t, CanRead("alice", note))
	assert.False(t, CanRead("bob", note))
}
