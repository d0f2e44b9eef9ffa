package viewer

import (
	"fmt"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"shardvault/cli/commands/internal"
	"shardvault/cli/models"
	"shardvault/cli/styles"
	"shardvault/cli/utils"
	"shardvault/shared"
)

type action int

const (
	PreviewAsset action = iota
	CopyReference
	Return
)

// RunModel fetches an asset and shows its info view, with actions to render
// a preview in the terminal or copy the asset's reference.
func RunModel(item models.AssetItem) (internal.Event, error) {
	var fileBytes []byte
	var err error
	_ = spinner.New().Title("Fetching asset...").Action(
		func() {
			fileBytes, err = fetchAsset(item.ID)
		}).Run()

	if err != nil {
		errMsg := fmt.Sprintf("Error: %s", err.Error())
		utils.ShowErrorForm(styles.ErrStyle.Render(errMsg))
		return internal.Event{
			Status: internal.StatusInvalid,
			Type:   internal.PreviewAssetRequest,
			Asset:  item,
		}, nil
	}

	options := []huh.Option[action]{
		huh.NewOption("Preview Asset", PreviewAsset),
		huh.NewOption("Copy Reference", CopyReference),
		huh.NewOption("Return to Assets", Return),
	}

	var selected action
	var viewerFunc func()
	viewerFunc = func() {
		err = huh.NewForm(huh.NewGroup(
			huh.NewNote().
				Title(utils.GenerateTitle(item.Name)).
				Description(
					utils.GenerateDescriptionSection(
						"Info",
						generateInfoView(item, len(fileBytes)),
						21)),
			huh.NewSelect[action]().
				Options(options...).
				Value(&selected),
		)).WithTheme(styles.Theme).Run()

		if err != nil {
			return
		}

		switch selected {
		case PreviewAsset:
			showAssetPreview(item, fileBytes)
			viewerFunc()
		case CopyReference:
			showCopyReferenceNote(item)
			viewerFunc()
		}
	}

	viewerFunc()

	return internal.Event{
		Status: internal.StatusOk,
		Type:   internal.PreviewAssetRequest,
		Asset:  item,
	}, nil
}

func showAssetPreview(item models.AssetItem, fileBytes []byte) {
	var noteContent string
	if len(fileBytes) > maxPreviewSize {
		noteContent = "Asset too large to preview"
	} else if isLikelyImage(item.MimeType) {
		noteContent = imageToAscii(fileBytes)
	} else if utf8.Valid(fileBytes) {
		noteContent = previewText(fileBytes)
	} else {
		noteContent = fmt.Sprintf(
			"No preview available for %s (%s)",
			item.MimeType,
			shared.ReadableFileSize(len(fileBytes)))
	}

	_ = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(utils.GenerateTitle(item.Name)).
				Description(noteContent),
		)).WithTheme(styles.Theme).Run()
}

func showCopyReferenceNote(item models.AssetItem) {
	reference := shared.AssetReference(item.ID)
	msg := fmt.Sprintf(
		"Copied %s to the clipboard.\n"+
			"Paste it into a shard's content to link this asset.",
		reference)

	err := clipboard.WriteAll(reference)
	if err != nil {
		utils.ShowErrorForm(styles.ErrStyle.Render(
			fmt.Sprintf("Error copying reference: %v", err)))
		return
	}

	_ = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(utils.GenerateTitle(item.Name)).
				Description(msg),
		)).WithTheme(styles.Theme).Run()
}
