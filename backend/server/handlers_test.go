package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shardvault/backend/state"
	"shardvault/backend/vault"
	"shardvault/shared"
	"shardvault/shared/constants"
)

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Error marshaling request body: %v\n", err)
	}

	return bytes.NewReader(data)
}

func TestUnlockHandlerBadBody(t *testing.T) {
	appCtx := state.NewContext()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vault/unlock",
		strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	UnlockHandler(w, req, appCtx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, appCtx.Unlocked())
}

func TestUnlockHandlerMissingPassword(t *testing.T) {
	appCtx := state.NewContext()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vault/unlock",
		jsonBody(t, shared.UnlockRequest{Path: t.TempDir()}))
	w := httptest.NewRecorder()
	UnlockHandler(w, req, appCtx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing password")
}

func TestUnlockHandlerNewVault(t *testing.T) {
	appCtx := state.NewContext()
	t.Cleanup(appCtx.Lock)
	root := t.TempDir()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vault/unlock",
		jsonBody(t, shared.UnlockRequest{Path: root, Password: "letmein"}))
	w := httptest.NewRecorder()
	UnlockHandler(w, req, appCtx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, appCtx.Unlocked())

	_, err := os.Stat(filepath.Join(root, constants.StoreFileName))
	assert.Nil(t, err)
}

func TestUnlockHandlerWrongPassword(t *testing.T) {
	appCtx := state.NewContext()
	root := t.TempDir()

	session, err := vault.Unlock(root, "first password")
	assert.Nil(t, err)
	session.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vault/unlock",
		jsonBody(t, shared.UnlockRequest{Path: root, Password: "second password"}))
	w := httptest.NewRecorder()
	UnlockHandler(w, req, appCtx)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid password")
	assert.False(t, appCtx.Unlocked())
}

func TestUnlockHandlerMissingSalt(t *testing.T) {
	appCtx := state.NewContext()
	root := t.TempDir()

	session, err := vault.Unlock(root, "first password")
	assert.Nil(t, err)
	session.Close()

	assert.Nil(t, os.Remove(filepath.Join(root, constants.SaltFileName)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vault/unlock",
		jsonBody(t, shared.UnlockRequest{Path: root, Password: "first password"}))
	w := httptest.NewRecorder()
	UnlockHandler(w, req, appCtx)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Salt file missing")
}

func TestLockHandler(t *testing.T) {
	appCtx, _ := newTestContext(t)
	assert.True(t, appCtx.Unlocked())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vault/lock", nil)
	w := httptest.NewRecorder()
	LockHandler(w, req, appCtx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, appCtx.Unlocked())

	// Locking an already locked vault is not an error
	w = httptest.NewRecorder()
	LockHandler(w, req, appCtx)
	assert.Equal(t, http.StatusOK, w.Code)
}

func statusRequest(appCtx *state.Context, root string) shared.VaultStatusResponse {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/vault/status?path="+url.QueryEscape(root), nil)
	w := httptest.NewRecorder()
	VaultStatusHandler(w, req, appCtx)

	var status shared.VaultStatusResponse
	_ = json.NewDecoder(w.Body).Decode(&status)
	return status
}

func TestVaultStatusHandler(t *testing.T) {
	appCtx := state.NewContext()
	t.Cleanup(appCtx.Lock)

	status := statusRequest(appCtx, t.TempDir())
	assert.Equal(t, constants.VaultStatusNew, status.Status)
	assert.False(t, status.Unlocked)

	root := t.TempDir()
	session, err := vault.Unlock(root, "test password")
	assert.Nil(t, err)
	appCtx.Unlock(session)

	status = statusRequest(appCtx, root)
	assert.Equal(t, constants.VaultStatusExisting, status.Status)
	assert.True(t, status.Unlocked)
}

func TestVaultStatusHandlerInvalidPath(t *testing.T) {
	appCtx := state.NewContext()

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/vault/status?path=/does/not/exist", nil)
	w := httptest.NewRecorder()
	VaultStatusHandler(w, req, appCtx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid path")
}

func TestStreamPortHandler(t *testing.T) {
	appCtx := state.NewContext()
	appCtx.SetStreamPort(38541)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vault/port", nil)
	w := httptest.NewRecorder()
	StreamPortHandler(w, req, appCtx)

	var resp shared.StreamPortResponse
	assert.Nil(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 38541, resp.Port)
}

func TestShardHandlersLifecycle(t *testing.T) {
	appCtx, _ := newTestContext(t)

	// Create
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shards",
		jsonBody(t, shared.ShardUpload{
			Title:   "first",
			Content: "hello",
			Tags:    []string{"a", "b"},
		}))
	w := httptest.NewRecorder()
	ShardsHandler(w, req, appCtx)
	assert.Equal(t, http.StatusOK, w.Code)

	var shard shared.Shard
	assert.Nil(t, json.NewDecoder(w.Body).Decode(&shard))
	assert.NotEmpty(t, shard.ID)
	assert.Equal(t, "first", shard.Title)
	assert.Equal(t, []string{"a", "b"}, shard.Tags)

	// List
	req = httptest.NewRequest(http.MethodGet, "/api/v1/shards", nil)
	w = httptest.NewRecorder()
	ShardsHandler(w, req, appCtx)
	assert.Equal(t, http.StatusOK, w.Code)

	var shards []shared.Shard
	assert.Nil(t, json.NewDecoder(w.Body).Decode(&shards))
	assert.Len(t, shards, 1)

	// Update
	req = httptest.NewRequest(http.MethodPut, "/api/v1/shards/"+shard.ID,
		jsonBody(t, shared.ShardUpload{Title: "renamed", Content: "hello"}))
	w = httptest.NewRecorder()
	ShardHandler(w, req, appCtx)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated shared.Shard
	assert.Nil(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, shard.CreatedAt, updated.CreatedAt)

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/shards/"+shard.ID, nil)
	w = httptest.NewRecorder()
	ShardHandler(w, req, appCtx)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/shards", nil)
	w = httptest.NewRecorder()
	ShardsHandler(w, req, appCtx)
	shards = nil
	assert.Nil(t, json.NewDecoder(w.Body).Decode(&shards))
	assert.Empty(t, shards)
}

func TestUpdateShardHandlerNotFound(t *testing.T) {
	appCtx, _ := newTestContext(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/shards/missing-id",
		jsonBody(t, shared.ShardUpload{Title: "x", Content: "y"}))
	w := httptest.NewRecorder()
	ShardHandler(w, req, appCtx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Shard not found")
}

func TestShardHandlerMissingID(t *testing.T) {
	appCtx, _ := newTestContext(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/shards/",
		jsonBody(t, shared.ShardUpload{Title: "x", Content: "y"}))
	w := httptest.NewRecorder()
	ShardHandler(w, req, appCtx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing shard id")
}

func TestShardHandlersLocked(t *testing.T) {
	appCtx := state.NewContext()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shards",
		jsonBody(t, shared.ShardUpload{Title: "x", Content: "y"}))
	w := httptest.NewRecorder()
	ShardsHandler(w, req, appCtx)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Vault locked")
}

func TestAssetHandlersLifecycle(t *testing.T) {
	appCtx, _ := newTestContext(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets",
		jsonBody(t, shared.ImportRequest{
			Name:      "clip.webm",
			Extension: "webm",
			Data:      []byte("not actually video"),
		}))
	w := httptest.NewRecorder()
	AssetsHandler(w, req, appCtx)
	assert.Equal(t, http.StatusOK, w.Code)

	var asset shared.Asset
	assert.Nil(t, json.NewDecoder(w.Body).Decode(&asset))
	assert.NotEmpty(t, asset.ID)
	assert.Equal(t, "video/webm", asset.MimeType)

	// List
	req = httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	w = httptest.NewRecorder()
	AssetsHandler(w, req, appCtx)
	assert.Equal(t, http.StatusOK, w.Code)

	var assets []shared.Asset
	assert.Nil(t, json.NewDecoder(w.Body).Decode(&assets))
	assert.Len(t, assets, 1)

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/assets/"+asset.ID, nil)
	w = httptest.NewRecorder()
	AssetHandler(w, req, appCtx)
	assert.Equal(t, http.StatusOK, w.Code)

	// Re-deleting 404s once the row is gone
	w = httptest.NewRecorder()
	AssetHandler(w, req, appCtx)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Asset not found")
}

func TestAssetHandlerMissingID(t *testing.T) {
	appCtx, _ := newTestContext(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/assets/", nil)
	w := httptest.NewRecorder()
	AssetHandler(w, req, appCtx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing asset id")
}

func TestUpHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/up", nil)
	w := httptest.NewRecorder()
	UpHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
