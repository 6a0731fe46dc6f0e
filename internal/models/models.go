package models

import (
	"strings"
	"time"
)

// Event - событие, как его отдает backend
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	EventDate    time.Time `json:"eventDate"`
	CreatedAt    time.Time `json:"createdAt"`
	Venue        string    `json:"venue"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"imageUrl"`
	IsDeleted    bool      `json:"isDeleted"`
}

// ResolveImageURL returns an absolute image URL. Relative references are
// resolved against the API base URL; already-absolute ones pass through.
func (e *Event) ResolveImageURL(baseURL string) string {
	if strings.HasPrefix(e.ImageURL, "http") {
		return e.ImageURL
	}
	path := strings.TrimLeft(e.ImageURL, "/")
	return strings.TrimRight(baseURL, "/") + "/" + path
}

// Category - категория событий
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"isDeleted"`
}

// Booking - бронирование события пользователем
type Booking struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	EventTitle  string    `json:"eventTitle"`
	EventDate   time.Time `json:"eventDate"`
	EventVenue  string    `json:"eventVenue"`
	BookingDate time.Time `json:"bookingDate"`
	IsDeleted   bool      `json:"isDeleted"`
}

// User - профиль пользователя
type User struct {
	ID                string    `json:"id"`
	UserName          string    `json:"userName"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	IsDeleted         bool      `json:"isDeleted"`
	Roles             []string  `json:"roles"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Session - аутентифицированная личность текущего клиента
type Session struct {
	User         User      `json:"user"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Expiration   time.Time `json:"expiration"`
}

// Page - параметры пагинации списков
type Page struct {
	Number int
	Size   int
}

// DefaultPage - значения пагинации по умолчанию
var DefaultPage = Page{Number: 1, Size: 10}

// Normalize replaces missing values with the defaults.
func (p Page) Normalize() Page {
	if p.Number <= 0 {
		p.Number = DefaultPage.Number
	}
	if p.Size <= 0 {
		p.Size = DefaultPage.Size
	}
	return p
}
