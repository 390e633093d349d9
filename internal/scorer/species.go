package scorer

import (
	"strings"

	"github.com/rcliao/breed-vibe/internal/model"
)

const (
	catMarker   = "cat"
	catMarkerVI = "mèo"
)

// ResolveIsCat decides whether a breed is a cat. An explicit type label is
// final; only when it is blank are the name and care text searched for the
// Vietnamese marker.
func ResolveIsCat(b model.Breed) bool {
	if t := Normalize(b.TypeLabel); t != "" {
		return strings.Contains(t, catMarker) || strings.Contains(t, catMarkerVI)
	}
	return strings.Contains(Normalize(b.Name), catMarkerVI) ||
		strings.Contains(Normalize(b.Care), catMarkerVI)
}
