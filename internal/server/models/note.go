package models

import "time"

// Note is a text note owned by exactly one user. SharedWith lists the user
// names granted read-only access; the set only grows and never contains
// the owner or duplicates.
type Note struct {
	ID         string
	Owner      string
	Body       string
	SharedWith []string
	CreatedAt  time.Time
}
