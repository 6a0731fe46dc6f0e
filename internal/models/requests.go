package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "eventhub/internal/errors"
)

// LoginRequest - учетные данные для входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate проверяет обязательные поля перед обращением к backend
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fmt.Errorf("email and password are required: %w", apperrors.ErrValidation)
	}
	return nil
}

// RegisterRequest - данные регистрации нового пользователя
type RegisterRequest struct {
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// Validate проверяет обязательные поля и совпадение паролей
func (r *RegisterRequest) Validate() error {
	missing := []string{}
	for field, value := range map[string]string{
		"userName":  r.UserName,
		"email":     r.Email,
		"password":  r.Password,
		"firstName": r.FirstName,
		"lastName":  r.LastName,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields %v: %w", missing, apperrors.ErrValidation)
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("passwords do not match: %w", apperrors.ErrValidation)
	}
	return nil
}

// AuthResponse - ответ backend на login/register
type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Expiration   time.Time `json:"expiration"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Roles        []string  `json:"roles"`
}

// Session строит сессию из ответа аутентификации
func (r *AuthResponse) Session() *Session {
	return &Session{
		User: User{
			ID:        r.UserID,
			UserName:  r.UserName,
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			CreatedAt: time.Now().UTC(),
			Roles:     append([]string{}, r.Roles...),
		},
		Token:        r.Token,
		RefreshToken: r.RefreshToken,
		Expiration:   r.Expiration,
	}
}

// ImageUpload - файл изображения, отправляемый multipart-формой
type ImageUpload struct {
	Filename string
	Data     []byte
}

// EventDraft - данные события для создания/обновления.
// Image может быть nil при обновлении: backend сохранит прежнее изображение.
type EventDraft struct {
	Title       string
	Description string
	CategoryID  string
	EventDate   time.Time
	Venue       string
	Price       float64
	Image       *ImageUpload
}

// Validate проверяет черновик события перед отправкой
func (d *EventDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required: %w", apperrors.ErrValidation)
	}
	if strings.TrimSpace(d.CategoryID) == "" {
		return fmt.Errorf("categoryId is required: %w", apperrors.ErrValidation)
	}
	if d.EventDate.IsZero() {
		return fmt.Errorf("eventDate is required: %w", apperrors.ErrValidation)
	}
	if d.Price < 0 {
		return fmt.Errorf("price must be non-negative: %w", apperrors.ErrValidation)
	}
	return nil
}

// CategoryRequest - тело запроса создания/обновления категории
type CategoryRequest struct {
	Name string `json:"name"`
}

// Validate проверяет имя категории
func (r *CategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("category name is required: %w", apperrors.ErrValidation)
	}
	return nil
}

// BookingRequest - тело запроса создания бронирования
type BookingRequest struct {
	EventID     string    `json:"EventId"`
	BookingDate time.Time `json:"BookingDate"`
}

// LogoutRequest - тело запроса выхода
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}
