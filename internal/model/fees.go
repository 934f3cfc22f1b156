package model

import "time"

// Fees is the platform-wide fee sheet.  Exactly one row exists; setting
// fees overwrites it.  Amounts are in the platform's minor currency unit.
type Fees struct {
	VisaFee          int64     `json:"visaFee"`
	AirportPickupFee int64     `json:"airportPickupFee"`
	MiscFee          int64     `json:"miscFee"`
	TicketPrice      int64     `json:"ticketPrice"`
	MarginPercentage int       `json:"marginPercentage"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultMarginPercentage is applied when a fee sheet is stored without an
// explicit margin.
const DefaultMarginPercentage = 20
