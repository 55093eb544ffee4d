package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/qbank/database"
	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validImport = `{"questions": [
	{"type": "fill", "title": "capital of France", "answer": "Paris"},
	{"type": "choice", "title": "2+2=?", "options": ["3", "4", "5", "6"], "answer": "4"}
]}`

const invalidImport = `{"questions": [
	{"type": "choice", "title": "pick", "options": ["a", "b"], "answer": "a"}
]}`

const yamlImport = `questions:
  - type: fill
    title: capital of Spain
    answer: Madrid
    difficulty: easy
`

// useSQLite points the command at a fresh sqlite file and returns its path.
func useSQLite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "qbank.db")
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_SQLITE_PATH", path)
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func activeQuestionTitles(t *testing.T, dbPath string) []string {
	t.Helper()
	db, err := database.Open(sqlite.Open(dbPath), true)
	require.NoError(t, err)
	defer database.Close(db)

	var titles []string
	require.NoError(t, db.Model(&model.Question{}).
		Where("is_active = ?", true).
		Order("id").
		Pluck("title", &titles).Error)
	return titles
}

func TestImportCommand(t *testing.T) {
	dbPath := useSQLite(t)
	ctx := context.Background()

	require.NoError(t, runImport(ctx, writeFile(t, "bank.json", validImport), false))
	assert.Equal(t, []string{"capital of France", "2+2=?"}, activeQuestionTitles(t, dbPath))

	require.NoError(t, runImport(ctx, writeFile(t, "more.yaml", yamlImport), false))
	assert.Len(t, activeQuestionTitles(t, dbPath), 3)
}

func TestImportReplaceWithInvalidFileKeepsBank(t *testing.T) {
	dbPath := useSQLite(t)
	ctx := context.Background()

	require.NoError(t, runImport(ctx, writeFile(t, "bank.json", validImport), false))

	err := runImport(ctx, writeFile(t, "bad.json", invalidImport), true)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "got %v", err)
	assert.Contains(t, err.Error(), "question #1")

	assert.Equal(t, []string{"capital of France", "2+2=?"}, activeQuestionTitles(t, dbPath))
}

func TestImportReplaceSwapsBank(t *testing.T) {
	dbPath := useSQLite(t)
	ctx := context.Background()

	require.NoError(t, runImport(ctx, writeFile(t, "bank.json", validImport), false))
	require.NoError(t, runImport(ctx, writeFile(t, "new.yaml", yamlImport), true))

	assert.Equal(t, []string{"capital of Spain"}, activeQuestionTitles(t, dbPath))
}

func TestReadImportFileRejectsMalformedJSON(t *testing.T) {
	_, err := readImportFile(writeFile(t, "broken.json", `{"questions": [`))
	assert.Error(t, err)
}
