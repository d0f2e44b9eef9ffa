package assets

import (
	"os"
	"path/filepath"
	"strings"

	"shardvault/cli/globals"
	"shardvault/cli/models"
	"shardvault/cli/utils"
	"shardvault/shared"
)

var assetContext *AssetContext

// AssetContext holds the assets fetched from the daemon, kept in sync as the
// user imports and deletes entries.
type AssetContext struct {
	Items []models.AssetItem
}

func FetchAssetContext() (*AssetContext, error) {
	if assetContext != nil {
		return assetContext, nil
	}

	assets, err := globals.API.GetAssets()
	if err != nil {
		return &AssetContext{}, err
	}

	items := make([]models.AssetItem, 0, len(assets))
	for _, asset := range assets {
		items = append(items, assetToItem(asset))
	}

	assetContext = &AssetContext{Items: items}
	return assetContext, nil
}

// Import reads the file at path and stores its bytes in the vault. The
// returned item carries the id used for asset references.
func (ctx *AssetContext) Import(path string) (models.AssetItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.AssetItem{}, err
	}

	name, extension := splitFileName(filepath.Base(path))
	asset, err := globals.API.ImportAsset(name, extension, data)
	if err != nil {
		return models.AssetItem{}, err
	}

	item := assetToItem(asset)
	ctx.insertItem(item)
	return item, nil
}

func (ctx *AssetContext) Delete(item models.AssetItem) error {
	err := globals.API.DeleteAsset(item.ID)
	if err != nil {
		return err
	}

	ctx.removeItem(item.ID)
	return nil
}

// Refresh drops the cached asset list so link changes made through shard
// edits show up.
func (ctx *AssetContext) Refresh() error {
	assets, err := globals.API.GetAssets()
	if err != nil {
		return err
	}

	items := make([]models.AssetItem, 0, len(assets))
	for _, asset := range assets {
		items = append(items, assetToItem(asset))
	}

	ctx.Items = items
	return nil
}

func (ctx *AssetContext) insertItem(item models.AssetItem) {
	ctx.Items = append(ctx.Items, item)
}

func (ctx *AssetContext) removeItem(itemID string) {
	for i, item := range ctx.Items {
		if item.ID == itemID {
			ctx.Items[i] = ctx.Items[len(ctx.Items)-1]
			ctx.Items = ctx.Items[:len(ctx.Items)-1]
			return
		}
	}
}

func assetToItem(asset shared.Asset) models.AssetItem {
	return models.AssetItem{
		ID:       asset.ID,
		Name:     asset.OriginalName,
		FilePath: asset.FilePath,
		MimeType: asset.MimeType,
		Linked:   len(asset.ShardID) > 0,
		Created:  utils.ParseTimestamp(asset.CreatedAt),
	}
}

// splitFileName splits a file name into its stem and its extension without
// the leading dot.
func splitFileName(filename string) (string, string) {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext), strings.TrimPrefix(ext, ".")
}
