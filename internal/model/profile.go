package model

import "encoding/json"

// UserType distinguishes client accounts from stylist accounts.
type UserType string

const (
	UserClient   UserType = "client"
	UserCoiffeur UserType = "coiffeur"
)

// Profile is the authenticated user as the backend describes it.
type Profile struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Type        UserType `json:"type"`
	Image       string   `json:"image,omitempty"`
	City        string   `json:"city,omitempty"`
	IsConfirmed bool     `json:"is_confirmed,omitempty"`
}

// IsStylist reports whether p is a stylist ("coiffeur") account.
// A nil profile is never a stylist.
func (p *Profile) IsStylist() bool {
	return p != nil && p.Type == UserCoiffeur
}

// Valid reports whether p carries the fields a session needs.
func (p *Profile) Valid() bool {
	return p != nil && p.ID != 0 && (p.Type == UserClient || p.Type == UserCoiffeur)
}

// Clone returns a copy that does not share memory with p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// SameAccount reports whether a and b name the same account with the same role.
func SameAccount(a, b *Profile) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID && a.Type == b.Type
}

// UnmarshalJSON accepts both spellings of the confirmation flag; /api/me
// sends camelCase while the login payload uses snake_case.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	var raw struct {
		alias
		IsConfirmedCamel *bool `json:"isConfirmed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Profile(raw.alias)
	if raw.IsConfirmedCamel != nil {
		p.IsConfirmed = *raw.IsConfirmedCamel
	}
	return nil
}
