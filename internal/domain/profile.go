package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrProfileNotFound = errors.New("profile not found")

var validate = validator.New()

// Profile is a marketplace member's public and contact details
type Profile struct {
	Username string    `json:"username" db:"username"`
	Email    string    `json:"email" db:"email"`
	FullName string    `json:"full_name" db:"full_name"`
	Bio      string    `json:"bio" db:"bio"`
	Location string    `json:"location" db:"location"`
	Phone    string    `json:"phone" db:"phone"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// ProfileUpdate holds the editable profile fields. Username and join date are fixed.
type ProfileUpdate struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Bio      string `json:"bio" validate:"max=500"`
	Location string `json:"location" validate:"max=100"`
	Phone    string `json:"phone" validate:"max=30"`
}

// Apply validates u and copies it onto p
func (u ProfileUpdate) Apply(p *Profile) error {
	u.Email = strings.TrimSpace(u.Email)
	u.FullName = strings.TrimSpace(u.FullName)
	u.Location = strings.TrimSpace(u.Location)
	u.Phone = strings.TrimSpace(u.Phone)

	if err := validate.Struct(u); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		out := make(ValidationErrors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: jsonName(fe.Field()), Message: fieldMessage(fe)})
		}
		return out
	}

	p.Email = u.Email
	p.FullName = u.FullName
	p.Bio = u.Bio
	p.Location = u.Location
	p.Phone = u.Phone
	return nil
}

func jsonName(field string) string {
	switch field {
	case "FullName":
		return "full_name"
	default:
		return strings.ToLower(field)
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
