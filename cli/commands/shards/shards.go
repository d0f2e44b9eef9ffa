package shards

import (
	"shardvault/cli/globals"
	"shardvault/cli/models"
	"shardvault/cli/utils"
	"shardvault/shared"
)

var shardContext *ShardContext

// ShardContext holds the shards fetched from the daemon, kept in sync as the
// user creates, edits, and deletes entries.
type ShardContext struct {
	Items []models.ShardItem
}

func FetchShardContext() (*ShardContext, error) {
	if shardContext != nil {
		return shardContext, nil
	}

	shards, err := globals.API.GetShards()
	if err != nil {
		return &ShardContext{}, err
	}

	items := make([]models.ShardItem, 0, len(shards))
	for _, shard := range shards {
		items = append(items, shardToItem(shard))
	}

	shardContext = &ShardContext{Items: items}
	return shardContext, nil
}

func (ctx *ShardContext) Create(item models.ShardItem) error {
	shard, err := globals.API.CreateShard(shardToUpload(item))
	if err != nil {
		return err
	}

	ctx.insertItem(shardToItem(shard))
	return nil
}

func (ctx *ShardContext) Update(item models.ShardItem) error {
	shard, err := globals.API.UpdateShard(item.ID, shardToUpload(item))
	if err != nil {
		return err
	}

	ctx.updateItem(shardToItem(shard))
	return nil
}

func (ctx *ShardContext) Delete(item models.ShardItem) error {
	err := globals.API.DeleteShard(item.ID)
	if err != nil {
		return err
	}

	ctx.removeItem(item.ID)
	return nil
}

func (ctx *ShardContext) insertItem(item models.ShardItem) {
	ctx.Items = append(ctx.Items, item)
}

func (ctx *ShardContext) removeItem(itemID string) {
	for i, item := range ctx.Items {
		if item.ID == itemID {
			ctx.Items[i] = ctx.Items[len(ctx.Items)-1]
			ctx.Items = ctx.Items[:len(ctx.Items)-1]
			return
		}
	}
}

func (ctx *ShardContext) updateItem(updatedItem models.ShardItem) {
	for i, item := range ctx.Items {
		if item.ID == updatedItem.ID {
			ctx.Items[i] = updatedItem
			return
		}
	}
}

func shardToItem(shard shared.Shard) models.ShardItem {
	return models.ShardItem{
		ID:      shard.ID,
		Title:   shard.Title,
		Content: shard.Content,
		Tags:    shard.Tags,
		Created: utils.ParseTimestamp(shard.CreatedAt),
		Updated: utils.ParseTimestamp(shard.UpdatedAt),
	}
}

func shardToUpload(item models.ShardItem) shared.ShardUpload {
	return shared.ShardUpload{
		Title:   item.Title,
		Content: item.Content,
		Tags:    item.Tags,
	}
}
