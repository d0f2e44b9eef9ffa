package vault

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"shardvault/backend/crypto"
	"shardvault/shared"
)

// mimeTypes maps lowercased file extensions to the content type served by
// the streaming endpoint. Anything else is treated as an opaque download.
var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mkv":  "video/x-matroska",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"pdf":  "application/pdf",
	"vtt":  "text/vtt",
	"srt":  "application/x-subrip",
}

func MimeType(extension string) string {
	if mimeType, ok := mimeTypes[strings.ToLower(extension)]; ok {
		return mimeType
	}

	return "application/octet-stream"
}

// ImportAsset encrypts raw file bytes under the session key, writes the blob
// to the asset directory, and records the asset. The blob keeps the original
// extension for convenience, but its content is encrypted. Imported assets
// start unowned until a shard referencing them is saved.
func (s *Session) ImportAsset(name, extension string, data []byte) (shared.Asset, error) {
	id := uuid.NewString()
	destFilename := fmt.Sprintf("%s.%s", id, extension)

	encrypted, err := crypto.Encrypt(s.key, data)
	if err != nil {
		return shared.Asset{}, fmt.Errorf("unable to encrypt asset: %w", err)
	}

	if err = os.WriteFile(s.AssetPath(destFilename), encrypted, 0600); err != nil {
		return shared.Asset{}, fmt.Errorf("unable to write asset blob: %w", err)
	}

	asset := shared.Asset{
		ID:           id,
		FilePath:     destFilename,
		OriginalName: name,
		MimeType:     MimeType(extension),
		CreatedAt:    time.Now().Format(time.RFC3339),
	}

	if err = s.store.InsertAsset(asset); err != nil {
		return shared.Asset{}, err
	}

	return asset, nil
}

// DeleteAsset removes an asset's blob and row. A blob already missing from
// disk is not an error. Callers must drop the asset's cache entry after the
// session lock is released.
func (s *Session) DeleteAsset(id string) error {
	filePath, err := s.store.GetAssetFilePath(id)
	if err != nil {
		return err
	}

	fullPath := s.AssetPath(filePath)
	if _, err = os.Stat(fullPath); err == nil {
		_ = os.Remove(fullPath)
	}

	return s.store.DeleteAsset(id)
}
