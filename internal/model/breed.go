// Package model defines the core breed data types.
package model

import "time"

// Breed is one row of the breed metadata sheet.
type Breed struct {
	Seq          int    `json:"seq"`
	Name         string `json:"name"`
	TypeLabel    string `json:"type,omitempty"`
	Lifespan     string `json:"lifespan,omitempty"`
	WeightText   string `json:"weight,omitempty"`
	HeightText   string `json:"height,omitempty"`
	LengthText   string `json:"length,omitempty"`
	Care         string `json:"care,omitempty"`
	PricePaper   string `json:"price_paper,omitempty"`
	PriceNoPaper string `json:"price_no_paper,omitempty"`
	PriceIntl    string `json:"price_international,omitempty"`
}

// SizeLabel buckets a size index.
type SizeLabel string

const (
	SizeNone   SizeLabel = ""
	SizeSmall  SizeLabel = "small"
	SizeMedium SizeLabel = "medium"
	SizeLarge  SizeLabel = "large"
)

// ValidSizes are the labels a scored breed can carry besides SizeNone.
var ValidSizes = map[SizeLabel]bool{
	SizeSmall:  true,
	SizeMedium: true,
	SizeLarge:  true,
}

// Scores holds the attributes derived from a breed.
type Scores struct {
	Energy      int       `json:"energy"`
	Space       int       `json:"space"`
	Grooming    int       `json:"grooming"`
	KidFriendly int       `json:"kid_friendly"`
	SizeIndex   *float64  `json:"size_index,omitempty"`
	Size        SizeLabel `json:"size"`
	IsCat       bool      `json:"is_cat"`
}

// ScoredBreed is a breed together with its parsed measurements and scores.
type ScoredBreed struct {
	Breed
	Weight *float64 `json:"avg_weight,omitempty"`
	Height *float64 `json:"avg_height,omitempty"`
	Length *float64 `json:"avg_length,omitempty"`
	Scores Scores   `json:"scores"`
}

// Species returns "Cat" or "Dog" from the resolved flag.
func (b ScoredBreed) Species() string {
	if b.Scores.IsCat {
		return "Cat"
	}
	return "Dog"
}

// Run describes one persisted scoring pass.
type Run struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Preset    string    `json:"preset"`
	ZeroMode  string    `json:"zero_mode"`
	CreatedAt time.Time `json:"created_at"`
	Total     int       `json:"total"`
	AvgWeight *float64  `json:"avg_weight,omitempty"`
	AvgHeight *float64  `json:"avg_height,omitempty"`
	AvgLength *float64  `json:"avg_length,omitempty"`
}
