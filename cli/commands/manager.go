package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"shardvault/cli/commands/assets"
	"shardvault/cli/commands/shards"
	"shardvault/cli/commands/vaultcmd"
	"shardvault/cli/globals"
	"shardvault/cli/styles"
	"shardvault/cli/utils"
)

type Command string

const (
	Unlock Command = "unlock"
	Lock   Command = "lock"
	Status Command = "status"
	Shards Command = "shards"
	Assets Command = "assets"
	Import Command = "import"
	Help   Command = "help"
)

var CommandMap = map[Command][]func(){
	Unlock: {vaultcmd.ShowUnlockModel},
	Lock:   {vaultcmd.ShowLockModel},
	Status: {vaultcmd.ShowStatusModel},
	Shards: {shards.ShowShardsModel},
	Assets: {assets.ShowAssetsModel},
	Import: {assets.ShowImportModel},
	Help:   {printHelp},
}

var VaultHelp = []string{
	fmt.Sprintf("%s | Unlock (or create) a vault\n"+
		"         - Example: shardvault unlock\n"+
		"         - Example: shardvault unlock -p path/to/vault", Unlock),
	fmt.Sprintf("%s   | Lock the vault, dropping its key from memory", Lock),
	fmt.Sprintf("%s | Show vault state and the asset streaming address", Status),
}

var ActionHelp = []string{
	fmt.Sprintf("%s | Browse, create, edit, and delete shards\n"+
		"         - Example: shardvault shards\n"+
		"         - Example: shardvault shards --list", Shards),
	fmt.Sprintf("%s | Browse, preview, and delete vault assets", Assets),
	fmt.Sprintf("%s | Import a file into the vault as an asset\n"+
		"         - Example: shardvault import path/to/file.png", Import),
}

var HelpMsg = `
Usage: shardvault <command> [args]
`

var CommandHelpStr = `
  %s`

func printHelp() {
	helpMsg := HelpMsg
	helpMsg += `
Vault Commands:`
	for _, msg := range VaultHelp {
		helpMsg += fmt.Sprintf(CommandHelpStr, msg)
	}

	helpMsg += `

Action Commands:`
	for _, msg := range ActionHelp {
		helpMsg += fmt.Sprintf(CommandHelpStr, msg)
	}

	fmt.Println(helpMsg)
	fmt.Println()
}

// Entrypoint is the main entrypoint to the CLI
func Entrypoint(args []string) {
	var command Command
	if len(args) < 2 {
		if len(globals.Config.DefaultView) > 0 {
			command = Command(globals.Config.DefaultView)
		} else {
			styles.PrintErrStr("-- Missing command")
			printHelp()
			return
		}
	} else {
		command = Command(args[1])
	}

	viewFunctions, ok := CommandMap[command]
	if !ok {
		styles.PrintErrStr(fmt.Sprintf("-- Invalid command '%s'", command))
		printHelp()
		return
	} else if command == Help {
		printHelp()
		return
	}

	// Ensure the daemon is reachable before running any view
	if !globals.API.IsUp() {
		errStr := fmt.Sprintf(
			"Unable to reach the shardvault daemon at %s - is it running?",
			globals.Config.Server)
		styles.PrintErrStr(errStr)
		return
	}

	// Content commands need an unlocked vault
	if isVaultContentCommand(command) {
		status, err := globals.API.VaultStatus("")
		if err != nil {
			utils.HandleCLIError("error checking vault status", err)
			return
		} else if !status.Unlocked {
			styles.PrintErrStr("The vault is locked. " +
				"Use the 'unlock' command to continue.")
			return
		}
	}

	// Set up logging output (can't log to stdout while bubbletea is running)
	f, err := tea.LogToFile("debug.log", "debug")
	if err != nil {
		panic(err)
	}

	defer f.Close()

	// Run view function(s)
	for _, viewFunction := range viewFunctions {
		viewFunction()
	}
}

// isVaultContentCommand checks if the provided command operates on vault
// content and therefore needs the vault unlocked
func isVaultContentCommand(cmd Command) bool {
	return cmd == Shards || cmd == Assets || cmd == Import
}
