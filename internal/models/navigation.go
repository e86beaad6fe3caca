package models

import "time"

// Navigation is a journal entry recording one successful move through history
type Navigation struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Token     string    `json:"token"`
	FromHash  string    `json:"from_hash"`
	ToHash    string    `json:"to_hash"`
	ToIndex   int       `json:"to_index"`
}
