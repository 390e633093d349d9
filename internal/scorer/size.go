package scorer

import (
	"math"

	"github.com/rcliao/breed-vibe/internal/model"
)

// Size index weights. Weight is the strongest size signal.
const (
	weightFactor = 0.4
	heightFactor = 0.3
	lengthFactor = 0.3

	smallBelow = 0.85
	largeAbove = 1.15
)

// ZeroMode controls how a measured zero is treated by SizeIndex.
type ZeroMode string

const (
	// ZeroAsMissing treats zero like an absent measurement.
	ZeroAsMissing ZeroMode = "zero-as-missing"
	// StrictZero only treats absent measurements as missing.
	StrictZero ZeroMode = "strict"
)

// Measurements are the parsed per-record averages. Nil means absent.
type Measurements struct {
	Weight *float64
	Height *float64
	Length *float64
}

// Averages are batch-wide means of each measurement. Nil means undefined.
type Averages struct {
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Length *float64 `json:"length,omitempty"`
}

// Aggregate computes the mean of every present measurement across the batch.
func Aggregate(batch []Measurements) Averages {
	var w, h, l meanAcc
	for _, m := range batch {
		w.add(m.Weight)
		h.add(m.Height)
		l.add(m.Length)
	}
	return Averages{Weight: w.mean(), Height: h.mean(), Length: l.mean()}
}

// meanAcc keeps a running mean rather than a sum so large values cannot
// overflow to +Inf.
type meanAcc struct {
	m float64
	n int
}

func (a *meanAcc) add(v *float64) {
	if !finite(v) {
		return
	}
	a.n++
	a.m += (*v - a.m) / float64(a.n)
}

func (a *meanAcc) mean() *float64 {
	if a.n == 0 || math.IsNaN(a.m) || math.IsInf(a.m, 0) {
		return nil
	}
	m := a.m
	return &m
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// SizeIndex combines the record's measurements against the batch averages:
// 0.4*w/avgW + 0.3*h/avgH + 0.3*l/avgL. A record of exactly average size
// scores 1.0. It reports false when any input is missing (see ZeroMode) or an
// average is undefined or zero.
func SizeIndex(m Measurements, avg Averages, mode ZeroMode) (float64, bool) {
	for _, a := range []*float64{avg.Weight, avg.Height, avg.Length} {
		if !present(a, false) {
			return 0, false
		}
	}
	allowZero := mode == StrictZero
	for _, v := range []*float64{m.Weight, m.Height, m.Length} {
		if !present(v, allowZero) {
			return 0, false
		}
	}
	idx := weightFactor*(*m.Weight / *avg.Weight) +
		heightFactor*(*m.Height / *avg.Height) +
		lengthFactor*(*m.Length / *avg.Length)
	if math.IsInf(idx, 0) || math.IsNaN(idx) {
		return 0, false
	}
	return idx, true
}

func present(v *float64, allowZero bool) bool {
	if !finite(v) {
		return false
	}
	return allowZero || *v != 0
}

// MapSize buckets a size index: below 0.85 is small, above 1.15 is large,
// the closed band in between is medium. An absent index maps to SizeNone.
func MapSize(index float64, ok bool) model.SizeLabel {
	switch {
	case !ok:
		return model.SizeNone
	case index < smallBelow:
		return model.SizeSmall
	case index > largeAbove:
		return model.SizeLarge
	default:
		return model.SizeMedium
	}
}
