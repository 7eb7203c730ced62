package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Roles normalizes the remote API's inconsistent role field, which may
// arrive as a single string ("admin") or an array (["admin","customer"]).
// All membership tests are case-insensitive.
type Roles []string

func (r *Roles) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*r = Roles{}
		} else {
			*r = Roles{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = Roles(many)
	return nil
}

func (r Roles) Has(role string) bool {
	for _, have := range r {
		if strings.EqualFold(have, role) {
			return true
		}
	}
	return false
}

func (r Roles) IsAdmin() bool    { return r.Has("admin") }
func (r Roles) IsCustomer() bool { return r.Has("customer") }

type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FullName        string     `json:"fullName"`
	Roles           Roles      `json:"roles"`
	IsActive        bool       `json:"isActive"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	Phone           string     `json:"phone,omitempty"`
	Address         string     `json:"address,omitempty"`
	City            string     `json:"city,omitempty"`
	Province        string     `json:"province,omitempty"`
	PostalCode      string     `json:"postalCode,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
}

// DisplayName is what list views show for a user; aggregation falls back
// to this when only an order's userId is known and the user fetch failed.
func (u *User) DisplayName() string {
	if u == nil || u.FullName == "" {
		return GuestCustomerName
	}
	return u.FullName
}

// GuestCustomerName labels orders whose owner could not be resolved.
const GuestCustomerName = "Guest Customer"
