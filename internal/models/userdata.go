package models

import "time"

// FavoriteRoute is a saved (from, to) station pair
type FavoriteRoute struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	CreatedAt time.Time `json:"timestamp"`
}

// RecentSearch is a (from, to) pair the user searched for
type RecentSearch struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	SearchedAt time.Time `json:"timestamp"`
}

// Preferences are the per-installation user settings
type Preferences struct {
	Theme         string `json:"theme" validate:"oneof=light dark"`
	Notifications bool   `json:"notifications"`
	DefaultLine   Line   `json:"defaultLine" validate:"oneof=western central harbour"`
	Language      string `json:"language" validate:"required,min=2,max=5"`
}

// DefaultPreferences returns the settings used before the user saves any
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "light",
		Notifications: true,
		DefaultLine:   LineWestern,
		Language:      "en",
	}
}
