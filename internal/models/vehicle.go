package models

import "time"

// Vehicle is a registered vehicle.
type Vehicle struct {
	ID        int64     `db:"id" json:"id"`
	VIN       *string   `db:"vin" json:"vin,omitempty"`
	Model     *string   `db:"model" json:"model,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
