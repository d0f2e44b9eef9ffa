package vaultcmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"shardvault/cli/globals"
	"shardvault/cli/styles"
	"shardvault/cli/utils"
	"shardvault/shared"
)

const newVaultWarning = `
No vault exists at this location yet. Submitting a password below will
create one. There is no recovery mechanism -- if you lose this password,
the vault contents are gone for good.`

const alreadyUnlockedMsg = `A vault is already unlocked. Run 'shardvault lock'
first if you want to switch to a different vault.`

// ShowUnlockModel is the main entrypoint to unlocking (or creating) a vault.
func ShowUnlockModel() {
	path := resolveVaultPath(os.Args)

	var status shared.VaultStatusResponse
	var statusErr error
	err := spinner.New().Title("Checking vault...").Action(
		func() {
			status, statusErr = globals.API.VaultStatus(path)
		}).Run()
	utils.HandleCLIError("", err)
	utils.HandleCLIError("error checking vault status", statusErr)

	if status.Unlocked {
		showAlreadyUnlockedModel()
	} else if isNewVault(status) {
		showCreateVaultModel(path)
	} else {
		showUnlockVaultModel(path)
	}
}

// ShowLockModel locks the vault, dropping the daemon's decryption key.
func ShowLockModel() {
	_ = spinner.New().Title("Locking vault...").Action(
		func() {
			err := globals.API.Lock()
			utils.HandleCLIError("error locking vault", err)
		}).Run()

	fmt.Println("Vault locked")
}

// ShowStatusModel displays the state of the vault and, when unlocked, the
// asset streaming address.
func ShowStatusModel() {
	path := resolveVaultPath(os.Args)

	var vaultDetails string
	err := spinner.New().Title("Fetching vault status...").Action(
		func() {
			_, vaultDetails = FetchVaultDetails(path)
		}).Run()
	utils.HandleCLIError("", err)

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(utils.GenerateTitle("Status")).
				Description(utils.GenerateDescriptionSection(
					"Info",
					vaultDetails, 21)),
			huh.NewConfirm().Affirmative("OK").Negative(""),
		)).WithTheme(styles.Theme).Run()
	utils.HandleCLIError("error displaying status", err)
}

// showCreateVaultModel prompts for a new vault password twice, then has the
// daemon initialize the vault.
func showCreateVaultModel(path string) {
	var password string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(utils.GenerateTitle("Unlock > New Vault")).
				Description(newVaultWarning),
			huh.NewInput().Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
			huh.NewInput().Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s != password {
						return errors.New("passwords do not match")
					}

					return nil
				}),
			huh.NewConfirm().Affirmative("Create Vault").Negative(""),
		),
	).WithTheme(styles.Theme).WithShowHelp(true).Run()
	utils.HandleCLIError("", err)

	var unlockErr error
	err = spinner.New().Title("Creating vault...").Action(
		func() {
			unlockErr = globals.API.Unlock(path, password)
		}).Run()
	utils.HandleCLIError("", err)
	utils.HandleCLIError("error creating vault", unlockErr)

	fmt.Println(styles.SuccessStyle.Render("Vault created and unlocked"))
}

// showUnlockVaultModel prompts for the password of an existing vault,
// retrying on a wrong password.
func showUnlockVaultModel(path string) {
	var password string

	var runFunc func(errorMessages ...string) error
	runFunc = func(errMsgs ...string) error {
		title := huh.NewNote().Title(utils.GenerateTitle("Unlock"))
		if len(errMsgs) > 0 {
			title.Description(styles.ErrStyle.Render(errMsgs[0]))
		}

		err := huh.NewForm(
			huh.NewGroup(
				title,
				huh.NewInput().Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
				huh.NewConfirm().Affirmative("Unlock").Negative(""),
			),
		).WithTheme(styles.Theme).WithShowHelp(true).Run()

		if err != nil {
			return err
		}

		var unlockErr error
		err = spinner.New().Title("Unlocking vault...").Action(
			func() {
				unlockErr = globals.API.Unlock(path, password)
			}).Run()
		if err != nil {
			return err
		}

		if isPasswordError(unlockErr) {
			password = ""
			return runFunc("Invalid password, try again")
		}
		utils.HandleCLIError("error unlocking vault", unlockErr)

		fmt.Println(styles.SuccessStyle.Render("Vault unlocked"))
		return nil
	}

	err := runFunc()
	if err != nil && err != huh.ErrUserAborted {
		panic(err)
	}
}

// showAlreadyUnlockedModel tells the user nothing needs to happen.
func showAlreadyUnlockedModel() {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(utils.GenerateTitle("Unlock")).
				Description(alreadyUnlockedMsg),
			huh.NewConfirm().Affirmative("OK").Negative(""),
		),
	).WithTheme(styles.Theme).Run()
	utils.HandleCLIError("error showing unlock note", err)
}
