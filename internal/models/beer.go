package models

import "gorm.io/gorm"

// BeerType is the closed set of beer style categories. Values are stored
// by symbolic name, never as free-form strings.
type BeerType string

const (
	Lager    BeerType = "LAGER"
	Malzbier BeerType = "MALZBIER"
	Witbier  BeerType = "WITBIER"
	Weiss    BeerType = "WEISS"
	Ale      BeerType = "ALE"
	IPA      BeerType = "IPA"
	Stout    BeerType = "STOUT"
)

// IsValid reports whether t is one of the known beer types.
func (t BeerType) IsValid() bool {
	switch t {
	case Lager, Malzbier, Witbier, Weiss, Ale, IPA, Stout:
		return true
	}
	return false
}

// Beer represents a beer product in the inventory.
// Invariant: 0 <= Quantity <= MaxCapacity after every service operation.
type Beer struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string     `json:"name" gorm:"uniqueIndex;type:varchar(200)" validate:"required,min=1,max=200"`
	Brand       string     `json:"brand" validate:"required,min=1,max=200"`
	MaxCapacity int        `json:"max" validate:"required,gt=0,max=500"`
	Quantity    int        `json:"quantity" validate:"gte=0,max=100"`
	Type        BeerType   `json:"type" validate:"required,oneof=LAGER MALZBIER WITBIER WEISS ALE IPA STOUT"`
	gorm.Model  `json:"-"` // CreatedAt, UpdatedAt, DeletedAt stay off the wire
}
