package domain

import "time"

// Note is the domain entity for a note. Every note belongs to exactly
// one user; OwnerID is enforced in every repo query predicate.
type Note struct {
	ID      int64
	OwnerID int64
	Title   string
	Content string

	CreatedAt time.Time
	UpdatedAt time.Time
}
