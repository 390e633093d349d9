package scorer

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset names.
const (
	PresetCurrent    = "current"
	PresetLegacy     = "legacy"
	PresetExhaustive = "exhaustive"
)

// DefaultKidFriendly is the fallback kid-friendliness score of the current
// heuristic: neutral, not "very friendly".
const DefaultKidFriendly = 3

// Tables is the full set of keyword tables used to score a breed.
type Tables struct {
	Preset      string       `yaml:"preset,omitempty"`
	Energy      KeywordTable `yaml:"energy"`
	Space       KeywordTable `yaml:"space"`
	Grooming    KeywordTable `yaml:"grooming"`
	KidFriendly KeywordTable `yaml:"kid_friendly"`
}

// All returns the tables in output column order.
func (t Tables) All() []KeywordTable {
	return []KeywordTable{t.Energy, t.Space, t.Grooming, t.KidFriendly}
}

var currentKeywords = map[string]map[int][]string{
	"energy": {
		1: {"ít vận động", "đi dạo ngắn", "nằm", "lười", "thụ động", "ngủ nhiều"},
		2: {"vận động nhẹ", "đi bộ", "trong nhà", "bình tĩnh"},
		3: {"hoạt bát", "trung bình", "nhanh nhẹn", "vui vẻ"},
		4: {"năng lượng cao", "chạy nhảy", "thể thao", "săn bắt", "kéo xe"},
		5: {"rất hiếu động", "không mệt mỏi", "cường độ cao", "bền bỉ", "vận động liên tục"},
	},
	"space": {
		1: {"căn hộ", "chung cư", "phòng nhỏ", "nhà nhỏ", "trong nhà"},
		2: {"nhà phố", "sân nhỏ", "trong nhà có sân"},
		3: {"sân vườn", "nhà rộng", "không gian thoáng"},
		4: {"sân rộng", "vườn lớn", "chạy nhảy"},
		5: {"trang trại", "đồng cỏ", "rất rộng", "bầy đàn"},
	},
	"grooming": {
		1: {"lông ngắn", "dễ chăm sóc", "ít rụng", "thỉnh thoảng chải"},
		2: {"chải hàng tuần", "rụng vừa", "lông sát"},
		3: {"lông trung bình", "chải thường xuyên", "cắt tỉa định kỳ"},
		4: {"lông dài", "rụng nhiều", "chải hàng ngày", "dễ rối"},
		5: {"lông rất dài", "2 lớp lông", "nhu cầu cao", "spa thường xuyên", "rất khó chăm"},
	},
	"kid_friendly": {
		1: {"rất thân thiện", "yêu trẻ", "nhẹ nhàng", "bảo mẫu", "cực kỳ hiền"},
		2: {"thân thiện", "hòa đồng", "dễ gần", "chơi cùng trẻ"},
		3: {"trung lập", "cần giám sát", "người lớn", "bình thường"},
		4: {"cảnh giác", "khó tính", "không thích bị trêu", "dễ cáu"},
		5: {"nguy hiểm", "không phù hợp trẻ nhỏ", "dữ dằn", "tấn công", "không nên nuôi cùng trẻ"},
	},
}

// Extremes first; 3 is only ever the fallback.
var currentPriority = []int{5, 4, 1, 2}

var exhaustivePriority = []int{5, 4, 3, 2, 1}

func buildTable(name string, priority []int, def int) KeywordTable {
	kw := currentKeywords[name]
	t := KeywordTable{Name: name, Default: def}
	used := map[int]bool{}
	for _, score := range priority {
		t.Levels = append(t.Levels, Level{Score: score, Keywords: kw[score]})
		used[score] = true
	}
	var rest []int
	for score := range kw {
		if !used[score] {
			rest = append(rest, score)
		}
	}
	sort.Ints(rest)
	for _, score := range rest {
		t.Reference = append(t.Reference, Level{Score: score, Keywords: kw[score]})
	}
	return t
}

func currentTables(priority []int, preset string) Tables {
	return Tables{
		Preset:      preset,
		Energy:      buildTable("energy", priority, 3),
		Space:       buildTable("space", priority, 3),
		Grooming:    buildTable("grooming", priority, 3),
		KidFriendly: buildTable("kid_friendly", priority, DefaultKidFriendly),
	}
}

// legacyTables is the first three-level heuristic: high wins over low,
// everything else is the middle score.
func legacyTables() Tables {
	return Tables{
		Preset: PresetLegacy,
		Energy: KeywordTable{Name: "energy", Default: 2, Levels: []Level{
			{Score: 3, Keywords: []string{"năng lượng cao", "chạy bộ", "hoạt bát", "làm việc"}},
			{Score: 1, Keywords: []string{"ít vận động", "đi dạo ngắn", "trong nhà"}},
		}},
		Space: KeywordTable{Name: "space", Default: 2, Levels: []Level{
			{Score: 3, Keywords: []string{"sân vườn", "không gian rộng", "trang trại"}},
			{Score: 1, Keywords: []string{"căn hộ", "nhà nhỏ", "chung cư"}},
		}},
		Grooming: KeywordTable{Name: "grooming", Default: 2, Levels: []Level{
			{Score: 3, Keywords: []string{"lông dài", "rụng nhiều", "chải lông thường xuyên"}},
			{Score: 1, Keywords: []string{"lông ngắn", "dễ chăm sóc"}},
		}},
		// Friendly keywords resolve to the default anyway, so only caution is matched.
		KidFriendly: KeywordTable{Name: "kid_friendly", Default: 1, Levels: []Level{
			{Score: 0, Keywords: []string{"không phù hợp trẻ nhỏ", "cảnh giác", "dữ"}},
		}, Reference: []Level{
			{Score: 1, Keywords: []string{"thân thiện", "quấn chủ", "hiền lành"}},
		}},
	}
}

// Presets lists the built-in preset names.
func Presets() []string {
	return []string{PresetCurrent, PresetExhaustive, PresetLegacy}
}

// PresetTables returns the built-in tables for name.
func PresetTables(name string) (Tables, error) {
	switch name {
	case "", PresetCurrent:
		return currentTables(currentPriority, PresetCurrent), nil
	case PresetExhaustive:
		return currentTables(exhaustivePriority, PresetExhaustive), nil
	case PresetLegacy:
		return legacyTables(), nil
	}
	return Tables{}, fmt.Errorf("unknown preset %q (valid: %v)", name, Presets())
}

// LoadTables reads keyword tables from a YAML file. The file may name a base
// preset; any table it leaves empty is taken from that preset.
func LoadTables(path string) (Tables, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read tables: %w", err)
	}
	return ParseTables(b)
}

// tableDefaults records which tables set `default` explicitly, so an
// omitted default is told apart from a zero one.
type tableDefaults struct {
	Energy      struct{ Default *int `yaml:"default"` } `yaml:"energy"`
	Space       struct{ Default *int `yaml:"default"` } `yaml:"space"`
	Grooming    struct{ Default *int `yaml:"default"` } `yaml:"grooming"`
	KidFriendly struct{ Default *int `yaml:"default"` } `yaml:"kid_friendly"`
}

// ParseTables decodes YAML keyword tables, filling gaps from the named preset:
// a table without levels is taken whole, a table without a default keeps the
// preset's default.
func ParseTables(b []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Tables{}, fmt.Errorf("parse tables: %w", err)
	}
	var defs tableDefaults
	if err := yaml.Unmarshal(b, &defs); err != nil {
		return Tables{}, fmt.Errorf("parse tables: %w", err)
	}
	base, err := PresetTables(t.Preset)
	if err != nil {
		return Tables{}, err
	}
	fillTable(&t.Energy, base.Energy, defs.Energy.Default)
	fillTable(&t.Space, base.Space, defs.Space.Default)
	fillTable(&t.Grooming, base.Grooming, defs.Grooming.Default)
	fillTable(&t.KidFriendly, base.KidFriendly, defs.KidFriendly.Default)
	if t.Preset == "" {
		t.Preset = base.Preset
	}
	t.Energy.Name = "energy"
	t.Space.Name = "space"
	t.Grooming.Name = "grooming"
	t.KidFriendly.Name = "kid_friendly"
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func fillTable(dst *KeywordTable, base KeywordTable, def *int) {
	if len(dst.Levels) == 0 {
		*dst = base
		return
	}
	if def == nil {
		dst.Default = base.Default
	}
}

// Validate rejects tables that repeat a score in their priority list.
func (t Tables) Validate() error {
	for _, table := range t.All() {
		seen := map[int]bool{}
		for _, l := range table.Levels {
			if seen[l.Score] {
				return fmt.Errorf("table %s: score %d listed twice", table.Name, l.Score)
			}
			seen[l.Score] = true
		}
	}
	return nil
}

// YAML encodes the tables in the format ParseTables reads.
func (t Tables) YAML() ([]byte, error) {
	return yaml.Marshal(t)
}
