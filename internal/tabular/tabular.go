// Package tabular reads and writes the breed metadata sheet as CSV.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rcliao/breed-vibe/internal/model"
)

// Column keys.
const (
	ColSeq          = "seq"
	ColType         = "type"
	ColName         = "name"
	ColLifespan     = "lifespan"
	ColWeight       = "weight"
	ColHeight       = "height"
	ColLength       = "length"
	ColCare         = "care"
	ColPricePaper   = "price_paper"
	ColPriceNoPaper = "price_no_paper"
	ColPriceIntl    = "price_intl"
)

// mergedPriceHeader heads three price columns when the sheet was exported
// from a spreadsheet with a merged cell; the next two headers are blank.
const mergedPriceHeader = "giá cả trung bình"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrMissingColumn is returned when a required column is not in the header.
var ErrMissingColumn = errors.New("missing required column")

var aliases = map[string][]string{
	ColSeq:          {"stt", "seq", "no", "#"},
	ColType:         {"type", "loài", "species"},
	ColName:         {"tên giống loài", "tên giống", "name", "breed"},
	ColLifespan:     {"tuổi thọ trung bình", "tuổi thọ", "lifespan"},
	ColWeight:       {"cân nặng", "cân nặng trung bình", "weight"},
	ColHeight:       {"chiều cao", "chiều cao trung bình", "height"},
	ColLength:       {"chiều dài", "chiều dài trung bình", "length"},
	ColCare:         {"cách chăm", "cách chăm sóc", "care"},
	ColPricePaper:   {"giá có giấy tờ", "price_paper"},
	ColPriceNoPaper: {"giá không giấy tờ", "price_no_paper"},
	ColPriceIntl:    {"giá quốc tế", "price_international", "price_intl"},
}

var required = []string{ColSeq, ColName, ColCare}

// OutputHeader is the fixed column order of a scored sheet.
var OutputHeader = []string{
	"STT", "type", "tên giống loài", "tuổi thọ trung bình",
	"cân nặng", "chiều cao", "chiều dài", "cách chăm",
	"giá có giấy tờ", "giá không giấy tờ", "giá quốc tế",
	"score_energy", "score_space", "score_grooming", "score_kid_friendly",
	"score_size", "size_index", "is_cat",
}

// ReadStats describes what Read kept and dropped.
type ReadStats struct {
	Rows    int      `json:"rows"`
	Skipped int      `json:"skipped"`
	Ignored []string `json:"ignored_columns,omitempty"`
}

func headerKey(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// mapHeader resolves each column index to a column key.
func mapHeader(header []string) (map[string]int, []string) {
	lookup := map[string]string{}
	for key, names := range aliases {
		for _, n := range names {
			lookup[n] = key
		}
	}

	cols := map[string]int{}
	var ignored []string
	for i, h := range header {
		k := headerKey(h)
		if k == mergedPriceHeader {
			for j, key := range []string{ColPricePaper, ColPriceNoPaper, ColPriceIntl} {
				if _, ok := cols[key]; !ok && i+j < len(header) {
					cols[key] = i + j
				}
			}
			continue
		}
		key, ok := lookup[k]
		if !ok {
			if k != "" && !isPriceSpill(cols, i) {
				ignored = append(ignored, h)
			}
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols, ignored
}

func isPriceSpill(cols map[string]int, i int) bool {
	for _, key := range []string{ColPriceNoPaper, ColPriceIntl} {
		if j, ok := cols[key]; ok && j == i {
			return true
		}
	}
	return false
}

// Read parses a breed sheet. Rows without a numeric STT or without a name
// (sub-headers, blank lines) are skipped and counted.
func Read(r io.Reader) ([]model.Breed, ReadStats, error) {
	var st ReadStats

	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, st, fmt.Errorf("read header: empty input")
		}
		return nil, st, fmt.Errorf("read header: %w", err)
	}

	cols, ignored := mapHeader(header)
	st.Ignored = ignored
	for _, key := range required {
		if _, ok := cols[key]; !ok {
			return nil, st, fmt.Errorf("%w: %s (header: %v)", ErrMissingColumn, key, header)
		}
	}

	var breeds []model.Breed
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, st, fmt.Errorf("read row %d: %w", st.Rows+st.Skipped+2, err)
		}

		get := func(key string) string {
			i, ok := cols[key]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		seq, ok := parseSeq(get(ColSeq))
		name := get(ColName)
		if !ok || name == "" {
			st.Skipped++
			continue
		}

		breeds = append(breeds, model.Breed{
			Seq:          seq,
			Name:         name,
			TypeLabel:    get(ColType),
			Lifespan:     get(ColLifespan),
			WeightText:   get(ColWeight),
			HeightText:   get(ColHeight),
			LengthText:   get(ColLength),
			Care:         get(ColCare),
			PricePaper:   get(ColPricePaper),
			PriceNoPaper: get(ColPriceNoPaper),
			PriceIntl:    get(ColPriceIntl),
		})
		st.Rows++
	}

	return breeds, st, nil
}

// parseSeq accepts "3" and spreadsheet-style "3.0".
func parseSeq(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Write emits a scored sheet in OutputHeader order, prefixed with a UTF-8
// BOM so spreadsheet tools pick up the Vietnamese text.
func Write(w io.Writer, rows []model.ScoredBreed) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(OutputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(Record(r)); err != nil {
			return fmt.Errorf("write row %d: %w", r.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record formats one scored breed as an output row.
func Record(r model.ScoredBreed) []string {
	sc := r.Scores
	sizeIndex := ""
	if sc.SizeIndex != nil {
		sizeIndex = strconv.FormatFloat(*sc.SizeIndex, 'f', 4, 64)
	}
	isCat := "0"
	if sc.IsCat {
		isCat = "1"
	}
	return []string{
		strconv.Itoa(r.Seq), r.TypeLabel, r.Name, r.Lifespan,
		r.WeightText, r.HeightText, r.LengthText, r.Care,
		r.PricePaper, r.PriceNoPaper, r.PriceIntl,
		strconv.Itoa(sc.Energy), strconv.Itoa(sc.Space),
		strconv.Itoa(sc.Grooming), strconv.Itoa(sc.KidFriendly),
		string(sc.Size), sizeIndex, isCat,
	}
}

// ReadFile opens path and calls Read.
func ReadFile(path string) ([]model.Breed, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes rows to path through a temp file in the same directory,
// so path may also be the input file.
func WriteFile(path string, rows []model.ScoredBreed) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".breed-vibe-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
