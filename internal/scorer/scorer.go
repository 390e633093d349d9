package scorer

import (
	"github.com/rcliao/breed-vibe/internal/model"
)

// Options configures a Scorer.
type Options struct {
	Tables   Tables
	ZeroMode ZeroMode
}

// Scorer scores whole batches of breeds.
type Scorer struct {
	tables   Tables
	zeroMode ZeroMode
}

// New creates a Scorer. Empty options mean the current preset with zero
// measurements treated as missing.
func New(opts Options) *Scorer {
	t := opts.Tables
	if len(t.Energy.Levels) == 0 && len(t.Space.Levels) == 0 &&
		len(t.Grooming.Levels) == 0 && len(t.KidFriendly.Levels) == 0 {
		t, _ = PresetTables(PresetCurrent)
	}
	mode := opts.ZeroMode
	if mode == "" {
		mode = ZeroAsMissing
	}
	return &Scorer{tables: t, zeroMode: mode}
}

// Tables returns the keyword tables in use.
func (s *Scorer) Tables() Tables { return s.tables }

// ZeroMode returns the zero handling mode in use.
func (s *Scorer) ZeroMode() ZeroMode { return s.zeroMode }

// Summary counts the outcome of a batch.
type Summary struct {
	Total       int                     `json:"total"`
	Cats        int                     `json:"cats"`
	Dogs        int                     `json:"dogs"`
	Sizes       map[model.SizeLabel]int `json:"sizes"`
	WithoutSize int                     `json:"without_size"`
}

// Result is a scored batch.
type Result struct {
	Breeds   []model.ScoredBreed `json:"breeds"`
	Averages Averages            `json:"averages"`
	Summary  Summary             `json:"summary"`
}

// Classify scores a single care description against the four tables.
func (s *Scorer) Classify(text string) model.Scores {
	return model.Scores{
		Energy:      Classify(text, s.tables.Energy),
		Space:       Classify(text, s.tables.Space),
		Grooming:    Classify(text, s.tables.Grooming),
		KidFriendly: Classify(text, s.tables.KidFriendly),
	}
}

// ScoreBatch scores every breed. Size scoring depends on the whole batch, so
// measurements are parsed and aggregated before any index is derived.
func (s *Scorer) ScoreBatch(breeds []model.Breed) Result {
	ms := make([]Measurements, len(breeds))
	for i, b := range breeds {
		ms[i] = Measurements{
			Weight: parseOptional(b.WeightText),
			Height: parseOptional(b.HeightText),
			Length: parseOptional(b.LengthText),
		}
	}
	avg := Aggregate(ms)

	res := Result{
		Breeds:   make([]model.ScoredBreed, len(breeds)),
		Averages: avg,
		Summary:  Summary{Total: len(breeds), Sizes: map[model.SizeLabel]int{}},
	}
	for i, b := range breeds {
		res.Breeds[i] = s.derive(b, ms[i], avg)

		sc := res.Breeds[i].Scores
		if sc.IsCat {
			res.Summary.Cats++
		} else {
			res.Summary.Dogs++
		}
		if sc.Size == model.SizeNone {
			res.Summary.WithoutSize++
		} else {
			res.Summary.Sizes[sc.Size]++
		}
	}
	return res
}

func (s *Scorer) derive(b model.Breed, m Measurements, avg Averages) model.ScoredBreed {
	sc := s.Classify(b.Care)
	idx, ok := SizeIndex(m, avg, s.zeroMode)
	if ok {
		sc.SizeIndex = &idx
	}
	sc.Size = MapSize(idx, ok)
	sc.IsCat = ResolveIsCat(b)

	out := model.ScoredBreed{
		Breed:  b,
		Weight: m.Weight,
		Height: m.Height,
		Length: m.Length,
		Scores: sc,
	}
	out.TypeLabel = out.Species()
	return out
}
