package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxGuestNameLength is the longest name, in runes, a guest may sign with.
const MaxGuestNameLength = 255

// Guest is one signature in the guestbook.
// ID and CreatedAt are assigned by the store on insert; ID orders guests
// by insertion.
type Guest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"guest"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGuest creates an unsaved Guest from a submitted name.
// Surrounding whitespace is removed before validation.
func NewGuest(name string) (*Guest, error) {
	guest := &Guest{Name: strings.TrimSpace(name)}
	if err := guest.Validate(); err != nil {
		return nil, err
	}
	return guest, nil
}

// Validate checks if the Guest has valid data.
func (g *Guest) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGuestName
	}
	if !utf8.ValidString(g.Name) || strings.ContainsRune(g.Name, 0) {
		return ErrInvalidGuestName
	}
	if utf8.RuneCountInString(g.Name) > MaxGuestNameLength {
		return ErrGuestNameTooLong
	}
	return nil
}
