package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shardvault/backend/crypto"
	"shardvault/backend/db"
	"shardvault/shared"
	"shardvault/shared/constants"
)

const password = "correct horse battery staple"

func newTestVault(t *testing.T) (*Session, string) {
	t.Helper()

	root := t.TempDir()
	session, err := Unlock(root, password)
	if err != nil {
		t.Fatalf("Error creating test vault: %v\n", err)
	}

	t.Cleanup(session.Close)
	return session, root
}

func TestUnlockCreatesVault(t *testing.T) {
	session, root := newTestVault(t)

	salt, err := os.ReadFile(filepath.Join(root, constants.SaltFileName))
	assert.Nil(t, err)
	assert.Equal(t, constants.SaltSize, len(salt))

	_, err = os.Stat(filepath.Join(root, constants.StoreFileName))
	assert.Nil(t, err)

	info, err := os.Stat(filepath.Join(root, constants.AssetDirName))
	assert.Nil(t, err)
	assert.True(t, info.IsDir())

	shards, err := session.Store().GetShards()
	assert.Nil(t, err)
	assert.Empty(t, shards)
}

func TestUnlockExistingVault(t *testing.T) {
	session, root := newTestVault(t)

	asset, err := session.ImportAsset("photo", "png", []byte("not really a png"))
	assert.Nil(t, err)
	session.Close()

	reopened, err := Unlock(root, password)
	assert.Nil(t, err)
	defer reopened.Close()

	// The same password and salt must reproduce the original asset key
	blob, err := os.ReadFile(reopened.AssetPath(asset.FilePath))
	assert.Nil(t, err)

	decrypted, err := crypto.Decrypt(reopened.Key(), blob)
	assert.Nil(t, err)
	assert.Equal(t, []byte("not really a png"), decrypted)
}

func TestUnlockWrongPassword(t *testing.T) {
	session, root := newTestVault(t)
	session.Close()

	_, err := Unlock(root, "not the password")
	assert.ErrorIs(t, err, InvalidPasswordError)
}

func TestUnlockMissingSalt(t *testing.T) {
	session, root := newTestVault(t)
	session.Close()

	err := os.Remove(filepath.Join(root, constants.SaltFileName))
	assert.Nil(t, err)

	_, err = Unlock(root, password)
	assert.ErrorIs(t, err, MissingSaltError)
}

func TestStatus(t *testing.T) {
	root := t.TempDir()

	status, err := Status(root)
	assert.Nil(t, err)
	assert.Equal(t, constants.VaultStatusNew, status)

	_, err = Status(filepath.Join(root, "does-not-exist"))
	assert.ErrorIs(t, err, InvalidPathError)

	filePath := filepath.Join(root, "file.txt")
	assert.Nil(t, os.WriteFile(filePath, []byte("x"), 0600))
	_, err = Status(filePath)
	assert.ErrorIs(t, err, InvalidPathError)

	session, err := Unlock(root, password)
	assert.Nil(t, err)
	session.Close()

	status, err = Status(root)
	assert.Nil(t, err)
	assert.Equal(t, constants.VaultStatusExisting, status)
}

func TestImportAsset(t *testing.T) {
	session, _ := newTestVault(t)

	data := []byte("raw video bytes")
	asset, err := session.ImportAsset("clip", "MP4", data)
	assert.Nil(t, err)

	assert.Equal(t, asset.ID+".MP4", asset.FilePath)
	assert.Equal(t, "clip", asset.OriginalName)
	assert.Equal(t, "video/mp4", asset.MimeType)
	assert.Empty(t, asset.ShardID)

	// The blob on disk must not contain the plaintext
	blob, err := os.ReadFile(session.AssetPath(asset.FilePath))
	assert.Nil(t, err)
	assert.NotContains(t, string(blob), "raw video bytes")

	decrypted, err := crypto.Decrypt(session.Key(), blob)
	assert.Nil(t, err)
	assert.Equal(t, data, decrypted)

	assets, err := session.Store().GetAssets()
	assert.Nil(t, err)
	assert.Equal(t, 1, len(assets))
	assert.Equal(t, asset.ID, assets[0].ID)
	assert.Empty(t, assets[0].ShardID)
}

func TestImportAssetNoExtension(t *testing.T) {
	session, _ := newTestVault(t)

	asset, err := session.ImportAsset("mystery", "", []byte("???"))
	assert.Nil(t, err)
	assert.Equal(t, asset.ID+".", asset.FilePath)
	assert.Equal(t, "application/octet-stream", asset.MimeType)

	_, err = os.Stat(session.AssetPath(asset.FilePath))
	assert.Nil(t, err)
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "image/png", MimeType("PNG"))
	assert.Equal(t, "image/jpeg", MimeType("jpeg"))
	assert.Equal(t, "video/x-matroska", MimeType("mkv"))
	assert.Equal(t, "application/x-subrip", MimeType("srt"))
	assert.Equal(t, "application/octet-stream", MimeType("exe"))
	assert.Equal(t, "application/octet-stream", MimeType(""))
}

func TestDeleteAsset(t *testing.T) {
	session, _ := newTestVault(t)

	asset, err := session.ImportAsset("doomed", "txt", []byte("bye"))
	assert.Nil(t, err)

	err = session.DeleteAsset(asset.ID)
	assert.Nil(t, err)

	_, err = os.Stat(session.AssetPath(asset.FilePath))
	assert.True(t, os.IsNotExist(err))

	_, err = session.Store().GetAssetFilePath(asset.ID)
	assert.ErrorIs(t, err, db.AssetNotFoundError)

	err = session.DeleteAsset(asset.ID)
	assert.ErrorIs(t, err, db.AssetNotFoundError)
}

func TestDeleteAssetMissingBlob(t *testing.T) {
	session, _ := newTestVault(t)

	asset, err := session.ImportAsset("gone", "txt", []byte("bye"))
	assert.Nil(t, err)

	// A blob already missing from disk doesn't block the delete
	assert.Nil(t, os.Remove(session.AssetPath(asset.FilePath)))
	assert.Nil(t, session.DeleteAsset(asset.ID))

	_, err = session.Store().GetAssetFilePath(asset.ID)
	assert.ErrorIs(t, err, db.AssetNotFoundError)
}

func TestScanAssetIDs(t *testing.T) {
	idA := strings.Repeat("a", constants.AssetIDLength)
	idB := strings.Repeat("b", constants.AssetIDLength)

	content := "first asset://" + idA + " then asset://" + idB +
		" and again asset://" + idA

	ids := ScanAssetIDs(content)
	assert.Equal(t, []string{idA, idB}, ids)

	// A reference truncated by the end of the content is skipped
	ids = ScanAssetIDs("tail asset://" + idA[:10])
	assert.Empty(t, ids)

	assert.Empty(t, ScanAssetIDs("no references here"))
}

func TestCreateShardLinksAssets(t *testing.T) {
	session, _ := newTestVault(t)

	asset, err := session.ImportAsset("pic", "png", []byte("png bytes"))
	assert.Nil(t, err)

	shard, err := session.CreateShard(shared.ShardUpload{
		Title:   "Trip notes",
		Content: "![](asset://" + asset.ID + ")",
		Tags:    []string{"travel"},
	})
	assert.Nil(t, err)
	assert.NotEmpty(t, shard.ID)
	assert.Equal(t, "Trip notes", shard.Title)
	assert.Equal(t, shard.CreatedAt, shard.UpdatedAt)

	assets, err := session.Store().GetAssets()
	assert.Nil(t, err)
	assert.Equal(t, shard.ID, assets[0].ShardID)
}

func TestLinkAssetsForceOverwrite(t *testing.T) {
	session, _ := newTestVault(t)

	asset, err := session.ImportAsset("shared", "gif", []byte("gif"))
	assert.Nil(t, err)

	ref := "asset://" + asset.ID
	first, err := session.CreateShard(shared.ShardUpload{
		Title: "first", Content: ref, Tags: []string{},
	})
	assert.Nil(t, err)

	second, err := session.CreateShard(shared.ShardUpload{
		Title: "second", Content: ref, Tags: []string{},
	})
	assert.Nil(t, err)

	// The most recent save wins ownership
	assets, _ := session.Store().GetAssets()
	assert.Equal(t, second.ID, assets[0].ShardID)
	assert.NotEqual(t, first.ID, assets[0].ShardID)

	touched, err := session.LinkAssets(first.ID, ref+" asset://"+strings.Repeat("f", 36))
	assert.Nil(t, err)
	assert.Equal(t, []string{asset.ID}, touched)
}

func TestUpdateShard(t *testing.T) {
	session, _ := newTestVault(t)

	shard, err := session.CreateShard(shared.ShardUpload{
		Title: "draft", Content: "v1", Tags: []string{"wip"},
	})
	assert.Nil(t, err)

	updated, err := session.UpdateShard(shard.ID, shared.ShardUpload{
		Title: "final", Content: "v2", Tags: []string{"done", "reviewed"},
	})
	assert.Nil(t, err)
	assert.Equal(t, shard.ID, updated.ID)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "v2", updated.Content)
	assert.Equal(t, shard.CreatedAt, updated.CreatedAt)

	shards, err := session.Store().GetShards()
	assert.Nil(t, err)
	assert.Equal(t, 1, len(shards))
	assert.Equal(t, "final", shards[0].Title)
	assert.Equal(t, []string{"done", "reviewed"}, shards[0].Tags)
}

func TestUpdateShardNotFound(t *testing.T) {
	session, _ := newTestVault(t)

	_, err := session.UpdateShard("missing-id", shared.ShardUpload{
		Title: "x", Content: "y", Tags: []string{},
	})
	assert.ErrorIs(t, err, db.ShardNotFoundError)
}

func TestGetShardsOrdering(t *testing.T) {
	session, _ := newTestVault(t)

	older := shared.Shard{
		ID: "shard-old", Title: "old", Content: "", Tags: []string{},
		CreatedAt: "2024-01-01T10:00:00Z", UpdatedAt: "2024-01-01T10:00:00Z",
	}
	newer := shared.Shard{
		ID: "shard-new", Title: "new", Content: "", Tags: []string{},
		CreatedAt: "2024-01-02T10:00:00Z", UpdatedAt: "2024-03-01T10:00:00Z",
	}

	assert.Nil(t, session.Store().InsertShard(older))
	assert.Nil(t, session.Store().InsertShard(newer))

	shards, err := session.Store().GetShards()
	assert.Nil(t, err)
	assert.Equal(t, []string{"shard-new", "shard-old"},
		[]string{shards[0].ID, shards[1].ID})
}

func TestDeleteShardCascade(t *testing.T) {
	session, _ := newTestVault(t)

	owned, err := session.ImportAsset("owned", "png", []byte("owned"))
	assert.Nil(t, err)
	loose, err := session.ImportAsset("loose", "png", []byte("loose"))
	assert.Nil(t, err)

	shard, err := session.CreateShard(shared.ShardUpload{
		Title:   "owner",
		Content: "asset://" + owned.ID,
		Tags:    []string{},
	})
	assert.Nil(t, err)

	deleted, err := session.DeleteShard(shard.ID)
	assert.Nil(t, err)
	assert.Equal(t, []string{owned.ID}, deleted)

	shards, _ := session.Store().GetShards()
	assert.Empty(t, shards)

	// Owned asset fully removed, unowned asset untouched
	_, err = session.Store().GetAssetFilePath(owned.ID)
	assert.ErrorIs(t, err, db.AssetNotFoundError)
	_, err = os.Stat(session.AssetPath(owned.FilePath))
	assert.True(t, os.IsNotExist(err))

	_, err = session.Store().GetAssetFilePath(loose.ID)
	assert.Nil(t, err)
	_, err = os.Stat(session.AssetPath(loose.FilePath))
	assert.Nil(t, err)
}

func TestDeleteShardUnknownID(t *testing.T) {
	session, _ := newTestVault(t)

	deleted, err := session.DeleteShard("never-existed")
	assert.Nil(t, err)
	assert.Empty(t, deleted)
}
