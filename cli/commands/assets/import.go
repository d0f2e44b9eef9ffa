package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh/spinner"

	"shardvault/cli/models"
	"shardvault/cli/styles"
	"shardvault/cli/utils"
	"shardvault/shared"
)

// ShowImportModel imports the file named on the command line, skipping the
// interactive table.
func ShowImportModel() {
	if len(os.Args) < 3 {
		styles.PrintErrStr(
			"-- Missing file path (usage: shardvault import path/to/file)")
		os.Exit(1)
	}

	path := os.Args[2]
	if _, err := os.Stat(path); err != nil {
		utils.HandleCLIError("error reading file", err)
	}

	ctx, err := FetchAssetContext()
	utils.HandleCLIError("error fetching assets", err)

	var item models.AssetItem
	var importErr error
	err = spinner.New().
		Title(fmt.Sprintf("Importing %s...", filepath.Base(path))).
		Action(func() {
			item, importErr = ctx.Import(path)
		}).Run()
	utils.HandleCLIError("", err)
	utils.HandleCLIError("error importing file", importErr)

	reference := shared.AssetReference(item.ID)
	_ = clipboard.WriteAll(reference)

	fmt.Println(styles.SuccessStyle.Render(
		fmt.Sprintf("Imported '%s'", item.Name)))
	fmt.Printf("Reference: %s (copied to clipboard)\n",
		styles.LinkedStyle.Render(reference))
}
