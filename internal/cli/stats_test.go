package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imageDocument = `type: diagram
year: 2023
questions:
  - question: Which region is shaded?
    image_url: https://img.example/shaded.png
    A: "North"
    B: "South"
    C: "East"
    D: "West"
    answer: A
`

func TestStatsCommand_TextReport(t *testing.T) {
	sheetPath, dbPath := setupTestStores(t)
	doc := writeTestDocument(t, testDocument)

	_, _, err := execute(t, "", "ingest", doc, "--sheet", sheetPath, "--db", dbPath)
	require.NoError(t, err)

	out, _, err := execute(t, "",
		"stats",
		"--sheet", sheetPath, "--db", dbPath,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Spreadsheet ("+sheetPath+")")
	assert.Contains(t, out, "Database ("+dbPath+")")
	assert.Contains(t, out, "Total:       1")
	assert.Contains(t, out, "mcq: 1")
}

func TestStatsCommand_JSONBreakdown(t *testing.T) {
	sheetPath, dbPath := setupTestStores(t)

	for _, body := range []string{testDocument, secondDocument, imageDocument} {
		doc := writeTestDocument(t, body)
		_, _, err := execute(t, "", "ingest", doc, "--sheet", sheetPath, "--db", dbPath)
		require.NoError(t, err)
	}

	out, _, err := execute(t, "",
		"--format", "json",
		"stats",
		"--sheet", sheetPath, "--db", dbPath,
	)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   StatsReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)

	assert.Equal(t, 3, resp.Data.Sheet.Total)
	assert.Equal(t, 3, resp.Data.Store.Total)
	assert.Equal(t, 1, resp.Data.Sheet.WithImages)
	assert.Equal(t, 1, resp.Data.Store.WithImages)
	assert.Equal(t, 2, resp.Data.Store.ByType["mcq"])
	assert.Equal(t, 1, resp.Data.Store.ByType["diagram"])
	assert.Equal(t, resp.Data.Sheet.ByType, resp.Data.Store.ByType)
}

func TestStatsCommand_Idempotent(t *testing.T) {
	sheetPath, dbPath := setupTestStores(t)
	doc := writeTestDocument(t, testDocument)

	_, _, err := execute(t, "", "ingest", doc, "--sheet", sheetPath, "--db", dbPath)
	require.NoError(t, err)

	first, _, err := execute(t, "", "stats", "--sheet", sheetPath, "--db", dbPath)
	require.NoError(t, err)
	second, _, err := execute(t, "", "stats", "--sheet", sheetPath, "--db", dbPath)
	require.NoError(t, err)

	assert.Equal(t, first, second, "stats must not change anything it reads")
}

func TestStatsCommand_MissingDatabase(t *testing.T) {
	sheetPath, _ := setupTestStores(t)
	missingDB := filepath.Join(t.TempDir(), "absent.db")

	_, _, err := execute(t, "",
		"stats",
		"--sheet", sheetPath, "--db", missingDB,
	)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "qbank setup")

	// The failed stats call must not have created the database.
	assert.NoFileExists(t, missingDB)
}

func TestStatsCommand_MissingSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "questions.db")

	// Initialize both, then point stats at a spreadsheet that is not there.
	_, _, err := execute(t, "", "setup", "--sheet", filepath.Join(dir, "made.xlsx"), "--db", dbPath)
	require.NoError(t, err)

	_, _, err = execute(t, "",
		"stats",
		"--sheet", filepath.Join(dir, "absent.xlsx"), "--db", dbPath,
	)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
