// Package catalog turns scored breeds into the frontend pet catalog JSON.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rcliao/breed-vibe/internal/model"
)

// Display labels used by the frontend size filter.
const (
	LabelSmall  = "Nhỏ"
	LabelMedium = "Trung bình"
	LabelLarge  = "Lớn"
)

// ImagePrefix is where breed avatars are served from.
const ImagePrefix = "/assets/avatar/"

// Price keeps the raw price texts.
type Price struct {
	Paper         string `json:"paper"`
	NoPaper       string `json:"no_paper"`
	International string `json:"international"`
}

// PetScores are the ordinal scores shown on a breed card.
type PetScores struct {
	Energy      int `json:"energy"`
	Space       int `json:"space"`
	Grooming    int `json:"grooming"`
	KidFriendly int `json:"kid_friendly"`
}

// Pet is one catalog entry.
type Pet struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Lifespan        string    `json:"lifespan"`
	CareInstruction string    `json:"care_instruction"`
	Price           Price     `json:"price"`
	PriceMin        int       `json:"priceMin"`
	PriceMax        int       `json:"priceMax"`
	Size            string    `json:"size"`
	Scores          PetScores `json:"scores"`
	ImagePath       string    `json:"image_path"`
}

var intRegex = regexp.MustCompile(`\d+`)

// Slug lower-cases a name and joins its words with underscores.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// SizeLabel maps a size bucket to its display label; anything that is not
// small or large shows as medium.
func SizeLabel(s model.SizeLabel) string {
	switch s {
	case model.SizeSmall:
		return LabelSmall
	case model.SizeLarge:
		return LabelLarge
	default:
		return LabelMedium
	}
}

// PriceRange returns the smallest and largest integer found across the price
// texts, or 0, 0 when there are none. Numbers too large for an int are skipped.
func PriceRange(texts ...string) (int, int) {
	nums := intRegex.FindAllString(strings.Join(texts, " "), -1)
	if len(nums) == 0 {
		return 0, 0
	}
	lo, hi := 0, 0
	seen := false
	for _, n := range nums {
		v, err := strconv.Atoi(n)
		if err != nil {
			continue
		}
		if !seen || v < lo {
			lo = v
		}
		if !seen || v > hi {
			hi = v
		}
		seen = true
	}
	return lo, hi
}

// Build converts scored breeds into catalog entries, skipping unnamed rows.
func Build(rows []model.ScoredBreed) []Pet {
	pets := make([]Pet, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(strings.ReplaceAll(r.Name, "_", " "))
		if name == "" {
			continue
		}
		slug := Slug(name)
		lo, hi := PriceRange(r.PricePaper, r.PriceNoPaper, r.PriceIntl)

		pets = append(pets, Pet{
			ID:              slug,
			Name:            name,
			Type:            r.Species(),
			Lifespan:        r.Lifespan,
			CareInstruction: r.Care,
			Price: Price{
				Paper:         r.PricePaper,
				NoPaper:       r.PriceNoPaper,
				International: r.PriceIntl,
			},
			PriceMin: lo,
			PriceMax: hi,
			Size:     SizeLabel(r.Scores.Size),
			Scores: PetScores{
				Energy:      r.Scores.Energy,
				Space:       r.Scores.Space,
				Grooming:    r.Scores.Grooming,
				KidFriendly: r.Scores.KidFriendly,
			},
			ImagePath: ImagePrefix + slug + ".jpg",
		})
	}
	return pets
}

// Write encodes pets as indented JSON without escaping non-ASCII or HTML.
func Write(w io.Writer, pets []Pet) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pets); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}

// WriteFile writes the catalog to path, creating parent directories.
func WriteFile(path string, pets []Pet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, pets); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
