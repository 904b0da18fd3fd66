// Package model holds the domain types threaded through procedures,
// services, and repositories.
package model

import "time"

// Session is the resolved authentication session for a request. It is
// produced once per request by the session resolver and read (never
// re-resolved) by downstream procedure steps.
type Session struct {
	// UserID is the subject of the session (Clerk user id).
	UserID string

	// Role is the active organization role, if any.
	Role string

	// Permissions are the active organization permissions, if any.
	Permissions []string
}

// User is the authenticated caller injected into the procedure context by
// the auth step.
type User struct {
	ID          string   `json:"id"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// Board is a kanban board on the storefront dashboard. Boards are private
// to their owner; every board-scoped procedure filters by both board id and
// owner id.
type Board struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
