package entity

import "time"

// Message is an anonymous note delivered to a User. It is never updated.
type Message struct {
	ID        string
	Content   string
	CreatedAt time.Time
}
