package assets

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"shardvault/cli/models"
	"shardvault/cli/utils"
)

// CreateAssetRows creates a slice of table.Row elements containing the
// ordered assets to display in the assets table
func CreateAssetRows(items []models.AssetItem) []table.Row {
	result := []table.Row{}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Created.After(items[j].Created)
	})

	spacing := utils.GenerateListIdxSpacing(len(items))

	for idx, item := range items {
		spacing = utils.GetListIdxSpacing(spacing, idx+1, len(items))

		linked := "-"
		if item.Linked {
			linked = "yes"
		}

		formattedName := fmt.Sprintf("%d%s| %s", idx+1, spacing, item.Name)
		created := item.Created.Format(time.DateOnly)
		rowStr := []string{formattedName, item.MimeType, linked, created}

		result = append(result, rowStr)
	}

	return result
}
