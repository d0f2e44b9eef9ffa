package utils

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"shardvault/cli/styles"
)

func HandleCLIError(msg string, err error) {
	if err == nil {
		return
	} else if err == huh.ErrUserAborted {
		os.Exit(0)
	}

	styles.PrintErrStr(fmt.Sprintf("ERROR: %s - %v\n", msg, err))
	os.Exit(1)
}

// ShowErrorForm displays an error message in a dismissable form.
func ShowErrorForm(errMsg string) {
	_ = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Error").Description(errMsg),
			huh.NewConfirm().Affirmative("OK").Negative(""),
		),
	).WithTheme(styles.Theme).Run()
}
