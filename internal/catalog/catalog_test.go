package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/breed-vibe/internal/model"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "golden_retriever", Slug("Golden  Retriever"))
	assert.Equal(t, "mèo_ba_tư", Slug(" Mèo Ba Tư "))
	assert.Equal(t, "", Slug("   "))
}

func TestPriceRange(t *testing.T) {
	lo, hi := PriceRange("8-15 triệu", "5", "30 USD")
	assert.Equal(t, 5, lo)
	assert.Equal(t, 30, hi)

	lo, hi = PriceRange("99999999999999999999 triệu", "5-8")
	assert.Equal(t, 5, lo)
	assert.Equal(t, 8, hi)

	lo, hi = PriceRange("", "liên hệ")
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)
}

func TestSizeLabel(t *testing.T) {
	assert.Equal(t, LabelSmall, SizeLabel(model.SizeSmall))
	assert.Equal(t, LabelMedium, SizeLabel(model.SizeMedium))
	assert.Equal(t, LabelLarge, SizeLabel(model.SizeLarge))
	assert.Equal(t, LabelMedium, SizeLabel(model.SizeNone))
}

func TestBuild(t *testing.T) {
	rows := []model.ScoredBreed{
		{
			Breed: model.Breed{Seq: 1, Name: "Golden_Retriever", Lifespan: "10-12 năm",
				Care: "Thân thiện", PricePaper: "8-15", PriceNoPaper: "5-7", PriceIntl: "30"},
			Scores: model.Scores{Energy: 4, Space: 3, Grooming: 4, KidFriendly: 2, Size: model.SizeLarge},
		},
		{Breed: model.Breed{Seq: 2, Name: " _ "}},
		{
			Breed:  model.Breed{Seq: 3, Name: "Mèo Xiêm"},
			Scores: model.Scores{Energy: 3, Space: 1, Grooming: 1, KidFriendly: 2, IsCat: true},
		},
	}

	pets := Build(rows)
	require.Len(t, pets, 2)

	g := pets[0]
	assert.Equal(t, "golden_retriever", g.ID)
	assert.Equal(t, "Golden Retriever", g.Name)
	assert.Equal(t, "Dog", g.Type)
	assert.Equal(t, 5, g.PriceMin)
	assert.Equal(t, 30, g.PriceMax)
	assert.Equal(t, LabelLarge, g.Size)
	if diff := cmp.Diff(PetScores{Energy: 4, Space: 3, Grooming: 4, KidFriendly: 2}, g.Scores); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/assets/avatar/golden_retriever.jpg", g.ImagePath)

	c := pets[1]
	assert.Equal(t, "Cat", c.Type)
	assert.Equal(t, LabelMedium, c.Size)
	assert.Equal(t, 0, c.PriceMax)
}

func TestWrite(t *testing.T) {
	pets := Build([]model.ScoredBreed{{Breed: model.Breed{Name: "Mèo <Anh>"}}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, pets))

	out := buf.String()
	assert.Contains(t, out, `"name": "Mèo <Anh>"`)
	assert.True(t, strings.HasPrefix(out, "[\n  {"))

	var decoded []Pet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	if diff := cmp.Diff(pets, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "pets_data.json")
	require.NoError(t, WriteFile(path, []Pet{}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))
}
