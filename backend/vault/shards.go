package vault

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"shardvault/shared"
	"shardvault/shared/constants"
)

// CreateShard records a new shard and claims ownership of every asset its
// content references.
func (s *Session) CreateShard(upload shared.ShardUpload) (shared.Shard, error) {
	now := time.Now().Format(time.RFC3339)

	tags := upload.Tags
	if tags == nil {
		tags = []string{}
	}

	shard := shared.Shard{
		ID:        uuid.NewString(),
		Title:     upload.Title,
		Content:   upload.Content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.InsertShard(shard); err != nil {
		return shared.Shard{}, err
	}

	if _, err := s.LinkAssets(shard.ID, shard.Content); err != nil {
		return shared.Shard{}, err
	}

	return shard, nil
}

// UpdateShard rewrites an existing shard and re-links the assets referenced
// by its new content.
func (s *Session) UpdateShard(id string, upload shared.ShardUpload) (shared.Shard, error) {
	now := time.Now().Format(time.RFC3339)

	tags := upload.Tags
	if tags == nil {
		tags = []string{}
	}

	createdAt, err := s.store.UpdateShard(id, upload.Title, upload.Content, tags, now)
	if err != nil {
		return shared.Shard{}, err
	}

	if _, err = s.LinkAssets(id, upload.Content); err != nil {
		return shared.Shard{}, err
	}

	return shared.Shard{
		ID:        id,
		Title:     upload.Title,
		Content:   upload.Content,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}, nil
}

// DeleteShard removes a shard along with every asset it owns, both the
// blobs on disk and the asset rows. Returns the ids of the deleted assets so
// callers can drop their cache entries after the session lock is released.
func (s *Session) DeleteShard(id string) ([]string, error) {
	assets, err := s.store.GetAssetsByShard(id)
	if err != nil {
		return nil, err
	}

	assetIDs := make([]string, 0, len(assets))
	for _, asset := range assets {
		assetIDs = append(assetIDs, asset.ID)

		fullPath := s.AssetPath(asset.FilePath)
		if _, err = os.Stat(fullPath); err == nil {
			_ = os.Remove(fullPath)
		}
	}

	if err = s.store.DeleteAssetsByShard(id); err != nil {
		return nil, err
	}

	return assetIDs, s.store.DeleteShard(id)
}

// LinkAssets scans shard content for asset references and reassigns each
// referenced asset to the shard, overwriting any previous owner. Returns the
// ids that matched actual asset rows.
func (s *Session) LinkAssets(shardID, content string) ([]string, error) {
	touched := []string{}
	for _, assetID := range ScanAssetIDs(content) {
		ok, err := s.store.SetAssetOwner(assetID, shardID)
		if err != nil {
			return nil, err
		}

		if ok {
			touched = append(touched, assetID)
		}
	}

	return touched, nil
}

// ScanAssetIDs extracts the candidate asset ids embedded in shard content. A
// reference is the asset scheme followed by a canonical 36 character id; the
// id itself is not validated here.
func ScanAssetIDs(content string) []string {
	seen := make(map[string]bool)
	ids := []string{}

	startIdx := 0
	for {
		idx := strings.Index(content[startIdx:], constants.AssetScheme)
		if idx == -1 {
			break
		}

		absIdx := startIdx + idx + len(constants.AssetScheme)
		if absIdx+constants.AssetIDLength <= len(content) {
			id := content[absIdx : absIdx+constants.AssetIDLength]
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}

		startIdx = absIdx
	}

	return ids
}
