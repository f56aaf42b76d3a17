package auth

import (
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// RegisterInput is the payload to create a user plus its role profile.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role" validate:"required,oneof=ppo agent client"`

	// Role-specific profile seeds.
	CompanyName     string           `json:"company_name"`
	LicenseNumber   string           `json:"license_number"`
	Certifications  []string         `json:"certifications"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate"`
	ExperienceYears int              `json:"experience_years" validate:"gte=0"`
}

// LoginInput is the credential payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the issued token pair.
type Session struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}
