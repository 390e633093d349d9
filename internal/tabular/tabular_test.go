package tabular

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/breed-vibe/internal/model"
)

const mergedSheet = "\ufeffSTT,tên giống loài,tuổi thọ trung bình,cách chăm,giá cả trung bình,,,score_energy\n" +
	",,,,có giấy tờ,không giấy tờ,quốc tế,\n" +
	"1,Corgi,12-15 năm,\"Năng lượng cao, lông ngắn\",15-20,8-10,30,\n" +
	"2.0,Mèo Ba Tư,15 năm,Lông dài,10,5,25,\n" +
	",,,,,,,\n" +
	"3,,,,,,,\n"

func TestRead_MergedPriceHeader(t *testing.T) {
	breeds, st, err := Read(strings.NewReader(mergedSheet))
	require.NoError(t, err)
	require.Len(t, breeds, 2)

	assert.Equal(t, 2, st.Rows)
	assert.Equal(t, 3, st.Skipped)
	assert.Equal(t, []string{"score_energy"}, st.Ignored)

	b := breeds[0]
	assert.Equal(t, 1, b.Seq)
	assert.Equal(t, "Corgi", b.Name)
	assert.Equal(t, "12-15 năm", b.Lifespan)
	assert.Equal(t, "Năng lượng cao, lông ngắn", b.Care)
	assert.Equal(t, "15-20", b.PricePaper)
	assert.Equal(t, "8-10", b.PriceNoPaper)
	assert.Equal(t, "30", b.PriceIntl)

	assert.Equal(t, 2, breeds[1].Seq)
	assert.Equal(t, "Mèo Ba Tư", breeds[1].Name)
}

func TestRead_EnglishHeaderAndMeasurements(t *testing.T) {
	sheet := "Seq, Breed ,Type,Weight,Height,Length,Care\n" +
		"7,Husky,Dog,20-27,50-60,90,Rất hiếu động\n"
	breeds, _, err := Read(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, breeds, 1)

	assert.Equal(t, model.Breed{
		Seq: 7, Name: "Husky", TypeLabel: "Dog",
		WeightText: "20-27", HeightText: "50-60", LengthText: "90",
		Care: "Rất hiếu động",
	}, breeds[0])
}

func TestRead_MissingColumn(t *testing.T) {
	_, _, err := Read(strings.NewReader("STT,tên giống loài\n1,Corgi\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestRead_Empty(t *testing.T) {
	_, _, err := Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseSeq(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3", 3, true},
		{"3.0", 3, true},
		{"3.5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseSeq(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func scored() []model.ScoredBreed {
	idx := 1.23456
	return []model.ScoredBreed{
		{
			Breed: model.Breed{Seq: 1, Name: "Husky", TypeLabel: "Dog", Care: "Rất hiếu động, cần trang trại"},
			Scores: model.Scores{Energy: 5, Space: 5, Grooming: 3, KidFriendly: 3,
				SizeIndex: &idx, Size: model.SizeLarge},
		},
		{
			Breed:  model.Breed{Seq: 2, Name: "Mèo Xiêm", TypeLabel: "Cat"},
			Scores: model.Scores{Energy: 3, Space: 3, Grooming: 3, KidFriendly: 3, IsCat: true},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, scored()))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(out[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, OutputHeader, records[0])
	assert.Equal(t, []string{
		"1", "Dog", "Husky", "", "", "", "", "Rất hiếu động, cần trang trại",
		"", "", "", "5", "5", "3", "3", "large", "1.2346", "0",
	}, records[1])
	assert.Equal(t, "", records[2][15])
	assert.Equal(t, "", records[2][16])
	assert.Equal(t, "1", records[2][17])
}

func TestWriteFile_InPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dog.csv")
	require.NoError(t, os.WriteFile(path, []byte(mergedSheet), 0o644))

	breeds, _, err := ReadFile(path)
	require.NoError(t, err)

	rows := make([]model.ScoredBreed, len(breeds))
	for i, b := range breeds {
		rows[i] = model.ScoredBreed{Breed: b}
	}
	require.NoError(t, WriteFile(path, rows))

	again, st, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, breeds, again)
	assert.Equal(t, 0, st.Skipped)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadFile_Missing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
