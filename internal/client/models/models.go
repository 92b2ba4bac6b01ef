// Package models holds the client-side view of API payloads.
package models

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ProfilePicture *string   `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u User) String() string {
	s := fmt.Sprintf("%s <%s>", u.Name, u.Email)
	if u.ProfilePicture != nil && *u.ProfilePicture != "" {
		s += " picture: " + *u.ProfilePicture
	}
	return s
}

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String renders the note as a single listing line.
func (n Note) String() string {
	return fmt.Sprintf("%s  %s  %s", n.ID, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Title)
}

// Details renders the full note for the show command.
func (n Note) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:      %s\n", n.ID)
	fmt.Fprintf(&b, "Title:   %s\n", n.Title)
	fmt.Fprintf(&b, "Created: %s\n", n.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(&b, "Updated: %s\n", n.UpdatedAt.Local().Format(time.RFC3339))
	b.WriteString("\n")
	b.WriteString(n.Content)
	return b.String()
}

// NotePage is one page of a listing as returned by the server.
type NotePage struct {
	CurrentPage int     `json:"current_page"`
	Data        []Note  `json:"data"`
	LastPage    int     `json:"last_page"`
	PerPage     int     `json:"per_page"`
	Total       int     `json:"total"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
}

func (p NotePage) HasNext() bool {
	return p.NextPageURL != nil
}

// Summary is the footer printed under a listing.
func (p NotePage) Summary() string {
	if p.Total == 0 {
		return "No notes."
	}
	return fmt.Sprintf("Page %d of %d (%d notes)", p.CurrentPage, p.LastPage, p.Total)
}
