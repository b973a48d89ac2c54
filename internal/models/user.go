package models

import "time"

// User is the signed-in account
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

// AuthSession is the token pair returned by a successful sign-in
type AuthSession struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         User      `json:"user"`
}

// Preferences are per-user display settings stored with the profile
type Preferences struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
}

// Profile is the account profile row
type Profile struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	FullName    string       `json:"full_name,omitempty"`
	AvatarURL   string       `json:"avatar_url,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}
