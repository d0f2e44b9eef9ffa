package confirmation

import (
	"github.com/charmbracelet/huh"

	"shardvault/cli/commands/internal"
	"shardvault/cli/styles"
)

// RunModel prompts for confirmation of a destructive request, echoing the
// original event back with a canceled status if the user declines.
func RunModel(req internal.Event, name string) (internal.Event, error) {
	var confirmed bool
	confirm := huh.NewConfirm().Affirmative("Yes").Negative("No").Value(&confirmed)

	title, desc := GenConfirmMsg(req.Type, name)
	confirm.Title(title)
	confirm.Description(desc)

	err := huh.NewForm(huh.NewGroup(confirm)).
		WithTheme(styles.DestructiveTheme()).Run()

	if confirmed {
		req.Status = internal.StatusOk
		return req, err
	}

	return internal.Event{
		Status: internal.StatusCanceled,
	}, err
}
