// internal/domain/property/entity.go
package property

import (
	"time"

	"github.com/lib/pq"
)

type Type string

const (
	TypeApartment  Type = "Apartment"
	TypeVilla      Type = "Villa"
	TypePlot       Type = "Plot"
	TypeHouse      Type = "House"
	TypeCottage    Type = "Cottage"
	TypePenthouse  Type = "Penthouse"
	TypeCommercial Type = "Commercial"
)

var Types = []Type{TypeApartment, TypeVilla, TypePlot, TypeHouse, TypeCottage, TypePenthouse, TypeCommercial}

// ValidType reports whether s names a listing type.
func ValidType(s string) bool {
	for _, t := range Types {
		if string(t) == s {
			return true
		}
	}
	return false
}

const (
	StatusAvailable = "Available"
	StatusSold      = "Sold"
)

// Property is a listing shown in the public catalog.
type Property struct {
	ID           int64          `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description" db:"description"`
	Price        float64        `json:"price" db:"price"`
	Location     string         `json:"location" db:"location"`
	PropertyType Type           `json:"property_type" db:"property_type"`
	Beds         int            `json:"beds" db:"beds"`
	Baths        int            `json:"baths" db:"baths"`
	Area         float64        `json:"area" db:"area"`
	Images       pq.StringArray `json:"images" db:"images"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	Status       string         `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// Filter narrows catalog queries. Title and Location match case-insensitive substrings.
type Filter struct {
	Title      string
	Location   string
	Type       string
	ActiveOnly bool
}
