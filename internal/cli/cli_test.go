package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/breed-vibe/internal/catalog"
	"github.com/rcliao/breed-vibe/internal/model"
	"github.com/rcliao/breed-vibe/internal/store"
)

const sheet = `STT,Tên giống loài,Cân nặng,Chiều cao,Chiều dài,Cách chăm,Giá có giấy tờ
1,Corgi,10-12,25-30,50,"Năng lượng cao, lông ngắn",15-20
2,Mèo Anh lông ngắn,4-6,30,55,"Ít vận động, sống trong căn hộ",
3,Husky,20-27,50-60,90,"Rất hiếu động, cần trang trại",
4,Chihuahua,,,,,
`

// resetFlags restores every flag to its default so commands do not leak
// state between executions of the shared RootCmd.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type env struct {
	dir string
	db  string
	in  string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("BREED_VIBE_CONFIG", "")
	t.Setenv("BREED_VIBE_DB", "")
	t.Setenv("BREED_VIBE_LOG_LEVEL", "")

	in := filepath.Join(dir, "dog.csv")
	require.NoError(t, os.WriteFile(in, []byte(sheet), 0o600))
	return env{dir: dir, db: filepath.Join(dir, "breeds.db"), in: in}
}

func (e env) run(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(""))
	RootCmd.SetArgs(append([]string{"--db", e.db, "--log-level", "error"}, args...))
	require.NoError(t, RootCmd.Execute(), out.String())
	return out.String()
}

func TestScoreCommand(t *testing.T) {
	e := newEnv(t)
	out := filepath.Join(e.dir, "scored.csv")

	var report scoreReport
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "score", "--in", e.in, "--out", out, "--save")), &report))

	assert.True(t, report.OK)
	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, "current", report.Preset)
	assert.Equal(t, 1, report.Summary.Cats)
	assert.Equal(t, 3, report.Summary.Dogs)
	assert.Equal(t, 1, report.Summary.WithoutSize)
	assert.NotEmpty(t, report.RunID)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\ufeffSTT,type,")))
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[2], ",1"), lines[2])
}

func TestScoreCommand_DefaultOut(t *testing.T) {
	e := newEnv(t)
	e.run(t, "score", "--in", e.in)

	_, err := os.Stat(filepath.Join(e.dir, "dog_scored.csv"))
	assert.NoError(t, err)
}

func TestDefaultOutPath(t *testing.T) {
	assert.Equal(t, "data/dog_scored.csv", defaultOutPath("data/dog.csv"))
	assert.Equal(t, "dog_scored", defaultOutPath("dog"))
}

func TestClassifyCommand(t *testing.T) {
	e := newEnv(t)

	var got map[string]int
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "classify", "Rất hiếu động, cần trang trại")), &got))
	assert.Equal(t, map[string]int{"energy": 5, "space": 5, "grooming": 3, "kid_friendly": 3}, got)

	require.NoError(t, json.Unmarshal([]byte(e.run(t, "classify", "--preset", "legacy", "Rất hiếu động")), &got))
	assert.Equal(t, 2, got["energy"])
	assert.Equal(t, 1, got["kid_friendly"])

	text := e.run(t, "--format", "text", "classify", "lông dài")
	assert.Equal(t, "energy=3 space=3 grooming=4 kid_friendly=3\n", text)
}

func TestTablesCommand(t *testing.T) {
	e := newEnv(t)

	out := e.run(t, "tables", "--preset", "legacy")
	assert.Contains(t, out, "preset: legacy")
	assert.Contains(t, out, "kid_friendly:")

	path := filepath.Join(e.dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))
	var got map[string]int
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "classify", "--tables", path, "cảnh giác")), &got))
	assert.Equal(t, 0, got["kid_friendly"])
}

func TestRunsBreedsAndRm(t *testing.T) {
	e := newEnv(t)
	var report scoreReport
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "score", "--in", e.in, "--save")), &report))

	var runs []model.Run
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "runs")), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, report.RunID, runs[0].ID)
	assert.Equal(t, report.RunID+"\n", e.run(t, "runs", "--ids-only"))

	var cats []model.ScoredBreed
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "breeds", "--species", "cat")), &cats))
	require.Len(t, cats, 1)
	assert.Equal(t, "Cat", cats[0].TypeLabel)

	var found []model.ScoredBreed
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "breeds", "husky")), &found))
	require.Len(t, found, 1)
	assert.Equal(t, model.SizeLarge, found[0].Scores.Size)

	var run model.Run
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "show")), &run))
	assert.Equal(t, report.RunID, run.ID)
	assert.Equal(t, 4, run.Total)

	var st store.Stats
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "stats")), &st))
	assert.Equal(t, 1, st.TotalRuns)
	assert.Equal(t, 4, st.TotalBreeds)

	assert.Contains(t, e.run(t, "rm", "--run", report.RunID), `"ok":true`)
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "runs")), &runs))
	assert.Empty(t, runs)
}

func TestExportCommand(t *testing.T) {
	e := newEnv(t)

	var fromCSV []catalog.Pet
	require.NoError(t, json.Unmarshal([]byte(e.run(t, "export", "--in", e.in)), &fromCSV))
	require.Len(t, fromCSV, 4)
	assert.Equal(t, "Cat", fromCSV[1].Type)
	assert.Equal(t, "Lớn", fromCSV[2].Size)
	assert.True(t, strings.HasPrefix(fromCSV[0].ImagePath, catalog.ImagePrefix))

	e.run(t, "score", "--in", e.in, "--save")
	out := filepath.Join(e.dir, "web", "pets_data.json")
	assert.Contains(t, e.run(t, "export", "--out", out), `"exported":4`)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var fromRun []catalog.Pet
	require.NoError(t, json.Unmarshal(b, &fromRun))
	assert.Equal(t, fromCSV, fromRun)
}
