// Package models defines the persisted server-side records.
package models

// User is an account that can authenticate and own notes. The password
// hash is opaque to everything except the users service and must never be
// written to logs or responses.
type User struct {
	ID           string
	Name         string
	PasswordHash string
}
