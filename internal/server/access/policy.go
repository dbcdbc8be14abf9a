// Package access holds the pure note-visibility predicates. The note
// store must consult them before returning or mutating a record; they
// have no side effects and no dependencies.
package access

import (
	"slices"

	"github.com/ipeonte/usernotes/internal/server/models"
)

// CanRead reports whether requester may read note: the owner and every
// shared user have read access.
func CanRead(requester string, note *models.Note) bool {
	if requester == note.Owner {
		return true
	}
	return slices.Contains(note.SharedWith, requester)
}

// CanWrite reports whether requester may mutate note. Only the owner may
// update, delete, or share a note.
func CanWrite(requester string, note *models.Note) bool {
	return requester == note.Owner
}
