package config

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"shardvault/backend/utils"
	"shardvault/shared/constants"
)

const defaultMaxImportSize = "32M"

var host = utils.GetEnvVar("SHARDVAULT_HOST", "localhost")
var port = utils.GetEnvVar("SHARDVAULT_PORT", "8250")
var vaultDir = utils.GetEnvVar("SHARDVAULT_VAULT_DIR", "")
var maxImportSize = utils.GetEnvVar("SHARDVAULT_MAX_IMPORT_SIZE", defaultMaxImportSize)

var IsDebugMode = utils.GetEnvVarBool("SHARDVAULT_DEBUG", false)

type ServerConfig struct {
	Host          string
	Port          string
	VaultDir      string
	MaxImportSize int64
	Version       string
}

var ShardVaultConfig ServerConfig

func init() {
	if vaultDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Unable to determine home directory: %v\n", err)
		}

		vaultDir = filepath.Join(home, ".shardvault")
	}

	importSize := utils.ParseSizeString(maxImportSize)
	if importSize <= 0 {
		importSize = utils.ParseSizeString(defaultMaxImportSize)
	}

	ShardVaultConfig = ServerConfig{
		Host:          host,
		Port:          port,
		VaultDir:      vaultDir,
		MaxImportSize: importSize,
		Version:       constants.VERSION,
	}

	if !isLoopback(host) {
		logWarning(
			"SHARDVAULT_HOST is not a loopback address.",
			"The vault API is designed for local, single-user",
			"access and should not be exposed to a network.")
	}

	if IsDebugMode {
		logWarning(
			"DEBUG MODE IS ACTIVE!",
			"DO NOT USE THIS SETTING IN PRODUCTION!")
		utils.LogStruct(ShardVaultConfig)
	}
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}

	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func logWarning(warnings ...string) {
	log.Println(strings.Repeat("@", 57))
	for _, warning := range warnings {
		log.Printf("!!! " + warning + "\n")
	}
	log.Println(strings.Repeat("@", 57))
}
