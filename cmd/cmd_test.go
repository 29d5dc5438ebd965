package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"list-reconciler/core/config"
	"list-reconciler/core/reconcile"
	"list-reconciler/core/server"
	"list-reconciler/feature/lists"
	"list-reconciler/feature/lists/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeJSON(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func executeDiff(t *testing.T, args ...string) (string, error) {
	t.Helper()
	diffKey, diffStrict, diffNoMoves, diffText, diffJSON = "id", false, false, false, false

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append([]string{"diff"}, args...))
	defer RootCmd.SetArgs(nil)

	err := RootCmd.Execute()
	return out.String(), err
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	old := writeJSON(t, dir, "old.json", `[{"id":"a"},{"id":"b"},{"id":"c"}]`)
	new := writeJSON(t, dir, "new.json", `[{"id":"b"},{"id":"c"},{"id":"a"}]`)

	out, err := executeDiff(t, old, new)
	require.NoError(t, err)
	assert.Equal(t, "move 0 -> 2\n0 inserts, 0 removes, 1 moves, 0 changes (3 -> 3 items)\n", out)

	out, err = executeDiff(t, "--no-moves", old, new)
	require.NoError(t, err)
	assert.Contains(t, out, "remove 0\n")
	assert.Contains(t, out, "insert 2 a\n")
	assert.Contains(t, out, "1 inserts, 1 removes, 0 moves")
}

func TestDiffCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	old := writeJSON(t, dir, "old.json", `[{"slug":"x","title":"X"}]`)
	new := writeJSON(t, dir, "new.json", `[{"slug":"x","title":"Y"},{"slug":"z"}]`)

	out, err := executeDiff(t, "--json", "--key", "slug", old, new)
	require.NoError(t, err)

	var script reconcile.Script[models.Item]
	require.NoError(t, json.Unmarshal([]byte(out), &script))
	assert.Equal(t, 1, script.Summary.Inserts)
	assert.Equal(t, 1, script.Summary.Changes)
	assert.Equal(t, 1, script.OldLen)
	assert.Equal(t, 2, script.NewLen)
}

func TestDiffCommand_Strict(t *testing.T) {
	dir := t.TempDir()
	old := writeJSON(t, dir, "old.json", `[{"id":"a"},{"id":"a"}]`)
	new := writeJSON(t, dir, "new.json", `[{"id":"a"}]`)

	out, err := executeDiff(t, old, new)
	require.NoError(t, err)
	assert.Contains(t, out, "remove 1\n")

	_, err = executeDiff(t, "--strict", old, new)
	assert.ErrorIs(t, err, lists.ErrInvalidItems)
}

func TestDiffCommand_Text(t *testing.T) {
	dir := t.TempDir()
	old := writeJSON(t, dir, "old.json", `[{"id":"a"},{"id":"b"}]`)
	new := writeJSON(t, dir, "new.json", `[{"id":"b"},{"id":"c"}]`)

	out, err := executeDiff(t, "--text", old, new)
	require.NoError(t, err)
	assert.Equal(t, "-{\"id\":\"a\"}\n {\"id\":\"b\"}\n+{\"id\":\"c\"}\n", out)
}

func TestDiffCommand_BadInput(t *testing.T) {
	dir := t.TempDir()
	good := writeJSON(t, dir, "good.json", `[]`)
	bad := writeJSON(t, dir, "bad.json", `{"id":`)

	_, err := executeDiff(t, good, bad)
	assert.ErrorContains(t, err, "failed to decode")

	_, err = executeDiff(t, good, filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestLoadItems(t *testing.T) {
	path := writeJSON(t, t.TempDir(), "items.json", `[{"id":7,"title":"Seven"},{"id":"x"},{"title":"no id"},{"id":1000000}]`)

	items, err := loadItems(path, "id")
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, models.Item{ID: "7", Data: map[string]any{"title": "Seven"}}, items[0])
	assert.Equal(t, models.Item{ID: "x"}, items[1])
	assert.Equal(t, "", items[2].ID)
	assert.Equal(t, "1000000", items[3].ID)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: server.Config{Port: "0"},
		Lists:  lists.Config{CacheTTLSeconds: 30, HistoryLimit: 50, ArchivePrefix: "lists"},
	}
}

func TestNewApp(t *testing.T) {
	app, err := newApp(testConfig(), zap.NewNop(), nil, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/diff", strings.NewReader(`{"old":[{"id":"a"}],"new":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/lists", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Integrity needs object storage and is not mounted without it.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/integrity/server", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewApp_APIKey(t *testing.T) {
	cfg := testConfig()
	cfg.Server.ApiKey = "secret"
	app, err := newApp(cfg, zap.NewNop(), nil, nil)
	require.NoError(t, err)

	body := `{"old":[],"new":[]}`
	req := httptest.NewRequest(http.MethodPost, "/diff", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/diff", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
