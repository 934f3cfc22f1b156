package model

import "time"

// Package categories offered by the catalog.  The enum lives in the
// packages.category column as well; both must stay in sync.
const (
	CategoryThreeStar = "3 star"
	CategoryFourStar  = "4 star"
	CategoryFiveStar  = "5 star"
)

// RoomOption prices one room configuration within a duration, e.g.
// two people sharing for a given per-person price.
type RoomOption struct {
	People int   `json:"people"`
	Price  int64 `json:"price"`
}

// PackageDuration groups the room options available for a stay length.
type PackageDuration struct {
	Nights      int          `json:"nights"`
	RoomOptions []RoomOption `json:"roomOptions"`
}

// TravelPackage is one catalog entry: a hotel category with its bookable
// durations.  Durations are persisted as a JSON column since they are
// always read and written as a unit.
type TravelPackage struct {
	ID        uint64            `json:"id"`
	Category  string            `json:"category"`
	Durations []PackageDuration `json:"durations"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ValidCategory reports whether c is one of the allowed package categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryThreeStar, CategoryFourStar, CategoryFiveStar:
		return true
	}
	return false
}
