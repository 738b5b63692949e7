// Package models holds the data types exchanged between the ParcelAce
// backend, the credential store, and the session layer.
package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User is the dashboard account record as returned by the backend and as
// cached alongside the bearer token. MobileVerifiedAt is nil until the
// user has completed OTP verification.
type User struct {
	ID                  int64      `json:"id" validate:"required,gt=0"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	MobileVerifiedAt    *time.Time `json:"mobile_verified_at"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
}

// Validate reports whether the record is structurally usable as a cached
// identity. Only the id is required; everything else may be filled in by a
// later profile refresh.
func (u *User) Validate() error {
	return validate.Struct(u)
}

// IsMobileVerified is true iff the verification timestamp is set.
func (u *User) IsMobileVerified() bool {
	return u != nil && u.MobileVerifiedAt != nil
}

// Wallet is the account balance snapshot fetched alongside the profile
// after login and cached in the session manager until logout.
type Wallet struct {
	Balance      float64 `json:"balance"`
	UsableAmount float64 `json:"usable_amount"`
	Currency     string  `json:"currency"`
}
