package main

import (
	"os"

	"shardvault/cli/commands"
)

func main() {
	commands.Entrypoint(os.Args)
}
