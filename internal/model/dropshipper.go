package model

import "time"

// Dropshipper is a reseller account. UserID is the underlying account id;
// the profile fields are denormalised from that account.
type Dropshipper struct {
	UserID       string    `db:"user_id"`
	UserName     string    `db:"user_name"`
	ContactEmail string    `db:"contact_email"`
	PhoneNumber  string    `db:"phone_number"`
	Street       string    `db:"street"`
	City         string    `db:"city"`
	Country      string    `db:"country"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

// DropshipperDTO is both the inbound and outbound shape of a dropshipper.
// UserID and CreatedAt are output only: they are never read back from a request.
type DropshipperDTO struct {
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	ContactEmail string `json:"contactEmail"`
	PhoneNumber  string `json:"phoneNumber"`
	Street       string `json:"street"`
	City         string `json:"city"`
	Country      string `json:"country"`
	IsActive     bool   `json:"isActive"`
	CreatedAt    Date   `json:"createdAt"`
}
