package shards

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"shardvault/cli/models"
	"shardvault/cli/utils"
)

// printShardList writes a plain shard listing to stdout for use in scripts
// and pipelines.
func printShardList() {
	ctx, err := FetchShardContext()
	utils.HandleCLIError("error fetching shards", err)

	sort.Slice(ctx.Items, func(i, j int) bool {
		return ctx.Items[i].Updated.After(ctx.Items[j].Updated)
	})

	for _, item := range ctx.Items {
		tags := "-"
		if len(item.Tags) > 0 {
			tags = strings.Join(item.Tags, ",")
		}

		fmt.Printf("%s  %s  %s  %s\n",
			item.ID,
			item.Updated.Format(time.DateOnly),
			tags,
			item.Title)
	}
}

// CreateShardRows creates a slice of table.Row elements containing the
// ordered shards to display in the shards table
func CreateShardRows(items []models.ShardItem) []table.Row {
	result := []table.Row{}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Updated.After(items[j].Updated)
	})

	spacing := utils.GenerateListIdxSpacing(len(items))

	for idx, item := range items {
		spacing = utils.GetListIdxSpacing(spacing, idx+1, len(items))

		tags := "-"
		if len(item.Tags) > 0 {
			tags = strings.Join(item.Tags, ", ")
		}

		formattedTitle := fmt.Sprintf("%d%s| %s", idx+1, spacing, item.Title)
		updated := item.Updated.Format(time.DateOnly)
		rowStr := []string{formattedTitle, tags, updated}

		result = append(result, rowStr)
	}

	return result
}
