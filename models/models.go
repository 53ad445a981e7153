package models

import "time"

// Session kinds
const (
	KindOwner    = "owner"
	KindCustomer = "customer"
)

// Reservation is a single table booking made from the public site.
// Email is the correlation key a customer lists their own bookings by.
type Reservation struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Date      string    `json:"date" bson:"date"` // YYYY-MM-DD
	Time      string    `json:"time" bson:"time"` // HH:MM
	Guests    int       `json:"guests" bson:"guests"`
	Message   string    `json:"message,omitempty" bson:"message,omitempty"`
	Status    string    `json:"status" bson:"status"` // pending, confirmed, cancelled
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CustomerCredential is the sign-in record for a registered customer.
type CustomerCredential struct {
	CredentialID   string    `json:"credentialId" bson:"credentialId"`
	Email          string    `json:"email" bson:"email"`
	PasswordHash   string    `json:"-" bson:"passwordHash"`
	ResetTokenHash string    `json:"-" bson:"resetTokenHash,omitempty"`
	ResetExpiry    time.Time `json:"-" bson:"resetExpiry,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// CustomerProfile is keyed by the credential id. Admin is a flag on the
// profile, not a separate account type; 1 grants dashboard access.
type CustomerProfile struct {
	CredentialID string    `json:"credentialId" bson:"credentialId"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	IsAdmin      int       `json:"isAdmin" bson:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// OwnerAccount is the bootstrap principal. At most one exists per deployment.
type OwnerAccount struct {
	CredentialID string    `json:"credentialId" bson:"credentialId"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// EstablishmentSettings holds the free-text operating hours the availability
// engine parses. Holidays is stored for manual use only; nothing selects it
// from a calendar.
type EstablishmentSettings struct {
	ID       string `json:"id" bson:"id"`
	Weekdays string `json:"weekdays" bson:"weekdays"`
	Weekends string `json:"weekends" bson:"weekends"`
	Holidays string `json:"holidays" bson:"holidays"`
}

// Session is the authenticated principal attached to a request or pushed to
// session observers. Profile is populated for customer sessions only.
type Session struct {
	Kind         string           `json:"kind"`
	CredentialID string           `json:"credentialId"`
	Profile      *CustomerProfile `json:"profile,omitempty"`
}
