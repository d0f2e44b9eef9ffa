package editor

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"shardvault/cli/commands/internal"
	"shardvault/cli/styles"
	"shardvault/cli/utils"
	"shardvault/shared/constants"
)

// RunModel prompts for a shard's title, content, and tags, pre-filled from
// the request when editing an existing shard.
func RunModel(request internal.ViewRequest) (internal.Event, error) {
	item := request.Shard
	title := item.Title
	content := item.Content
	tags := strings.Join(item.Tags, ", ")
	var confirmed bool

	formTitle := "Shards > New Shard"
	affirmative := "Create"
	if request.Type == internal.EditShardRequest {
		formTitle = "Shards > Edit Shard"
		affirmative = "Save"
	}

	err := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(utils.GenerateTitle(formTitle)),
		huh.NewInput().
			Title("Title").
			Value(&title).
			Validate(func(s string) error {
				if len(strings.TrimSpace(s)) == 0 {
					return errors.New("title cannot be empty")
				}

				return nil
			}),
		huh.NewText().
			Title("Content").
			Description("Reference vault assets with "+
				constants.AssetScheme+"<id>").
			Value(&content),
		huh.NewInput().
			Title("Tags").
			Description("Comma separated").
			Value(&tags),
		huh.NewConfirm().
			Affirmative(affirmative).
			Negative("Cancel").
			Value(&confirmed),
	)).WithTheme(styles.Theme).Run()

	if confirmed {
		item.Title = title
		item.Content = content
		item.Tags = parseTags(tags)

		return internal.Event{
			Status: internal.StatusOk,
			Type:   request.Type,
			Shard:  item,
		}, err
	}

	return internal.Event{
		Status: internal.StatusCanceled,
		Type:   request.Type,
	}, err
}

// parseTags splits a comma separated tag string, dropping empty entries.
func parseTags(value string) []string {
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		tag = strings.TrimSpace(tag)
		if len(tag) > 0 {
			tags = append(tags, tag)
		}
	}

	return tags
}
