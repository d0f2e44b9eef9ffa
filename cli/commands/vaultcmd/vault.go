package vaultcmd

import (
	"fmt"
	"strings"

	"shardvault/cli/globals"
	"shardvault/cli/utils"
	"shardvault/shared"
	"shardvault/shared/constants"
)

// resolveVaultPath picks the vault directory for a command. A -p/--path flag
// wins, then the configured vault_dir, then the daemon's own default.
func resolveVaultPath(args []string) string {
	var path string
	utils.StrFlag(&path, "path", globals.Config.VaultDir, args)
	return path
}

func isNewVault(status shared.VaultStatusResponse) bool {
	return status.Status == constants.VaultStatusNew
}

// isPasswordError reports whether an unlock failure means the password was
// wrong, rather than the daemon or the vault directory being broken.
func isPasswordError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "401")
}

// FetchVaultDetails fetches the state of the vault at path and formats it
// for display.
func FetchVaultDetails(path string) (shared.VaultStatusResponse, string) {
	status, err := globals.API.VaultStatus(path)
	if err != nil {
		return status,
			fmt.Sprintf("Error fetching vault status: %v\n", err)
	}

	stateStr := "Locked"
	streamStr := "Unavailable (vault is locked)"
	if status.Unlocked {
		stateStr = "Unlocked"
		port, portErr := globals.API.StreamPort()
		if portErr != nil {
			streamStr = fmt.Sprintf("Error: %v", portErr)
		} else {
			streamStr = fmt.Sprintf("http://127.0.0.1:%d/asset/<id>", port)
		}
	}

	dirStr := path
	if len(dirStr) == 0 {
		dirStr = "(daemon default)"
	}

	vaultDetails := fmt.Sprintf(""+
		"Directory: %s\n"+
		"Vault:     %s\n"+
		"State:     %s\n\n"+
		"Streaming: %s",
		dirStr,
		status.Status,
		stateStr,
		streamStr)

	return status, vaultDetails
}
