package domain

import "time"

// Attachment is one supporting document recorded against a generated entry.
type Attachment struct {
	ID        string
	Filename  string
	Data      []byte
	EntryID   string
	CreatedAt time.Time
}
