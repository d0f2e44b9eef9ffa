package main

import (
	"fmt"

	_ "github.com/joho/godotenv/autoload"

	"shardvault/backend/config"
	"shardvault/backend/cron"
	"shardvault/backend/server"
	"shardvault/backend/state"
)

func main() {
	appCtx := state.NewContext()

	cron.InitCronTasks(appCtx, server.ManageLimiters)

	addr := fmt.Sprintf("%s:%s",
		config.ShardVaultConfig.Host,
		config.ShardVaultConfig.Port)

	server.Run(addr, appCtx)
}
