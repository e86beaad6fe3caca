package models

import (
	"strings"
	"time"
)

// Commit represents a commit in the navigable history
type Commit struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// ShortHash returns a shortened commit hash (first 7 characters)
func (c *Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Summary returns the first line of the commit message
func (c *Commit) Summary() string {
	summary, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimRight(summary, "\r")
}
