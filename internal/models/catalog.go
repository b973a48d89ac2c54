package models

import "github.com/julianstephens/mindfulpath/internal/constants"

// Book is a recommended reading or listening title
type Book struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Author   string               `json:"author"`
	ImageURL string               `json:"imageUrl"`
	Rating   float64              `json:"rating"`
	Format   constants.BookFormat `json:"format"`
	URL      string               `json:"url"`
	Price    string               `json:"price"`
}

// OrganizationType is the reach of a support organization
type OrganizationType string

const (
	OrgGlobal        OrganizationType = "Global"
	OrgInternational OrganizationType = "International"
	OrgNational      OrganizationType = "National"
	OrgRegional      OrganizationType = "Regional"
)

// Contact holds the ways to reach an organization
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Helpline string `json:"helpline,omitempty"`
}

// Organization is a mental-health support organization
type Organization struct {
	Name        string           `json:"name"`
	Website     string           `json:"website"`
	Description string           `json:"description"`
	Type        OrganizationType `json:"type"`
	Country     string           `json:"country"`
	Location    string           `json:"location,omitempty"`
	Contact     Contact          `json:"contact"`
}

// Location is the result of a forward geocode
type Location struct {
	City      string `json:"city"`
	Country   string `json:"country"`
	Formatted string `json:"formatted"`
}

// Track is an uplifting music track
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ArtistName string   `json:"artistName"`
	Image      string   `json:"image"`
	AudioURL   string   `json:"audioUrl"`
	Duration   int      `json:"duration"` // seconds
	Moods      []string `json:"moods"`
}
