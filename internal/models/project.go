package models

import "time"

// Project represents a client engagement that contracts and invoices hang off.
type Project struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email"`
	ClientContact string     `json:"client_contact"`
	ClientAddress string     `json:"client_address"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Budget        float64    `json:"budget"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
