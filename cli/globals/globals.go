package globals

import (
	"log"

	"shardvault/cli/api"
	"shardvault/cli/config"
)

var API *api.Context
var Config config.Config

func init() {
	var err error
	Config, err = config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading CLI config: %v\n", err)
	}

	API = api.InitContext(Config.Server)
}
