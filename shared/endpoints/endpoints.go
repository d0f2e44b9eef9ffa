package endpoints

import (
	"fmt"
	"strings"
)

const apiVersion = "v1"

type Endpoint string

var (
	VaultUnlock = genEndpoint("/api/%s/vault/unlock")
	VaultLock   = genEndpoint("/api/%s/vault/lock")
	VaultStatus = genEndpoint("/api/%s/vault/status")
	StreamPort  = genEndpoint("/api/%s/vault/port")

	Shards = genEndpoint("/api/%s/shards")
	Shard  = genEndpoint("/api/%s/shards/*")

	Assets = genEndpoint("/api/%s/assets")
	Asset  = genEndpoint("/api/%s/assets/*")

	// StreamAsset is served unversioned by both the command API and the
	// dedicated streaming listener so media URLs stay short.
	StreamAsset = genEndpoint("/asset/*")

	Up = genEndpoint("/up")
)

var JSVarNameMap = map[Endpoint]string{
	VaultUnlock: "VaultUnlock",
	VaultLock:   "VaultLock",
	VaultStatus: "VaultStatus",
	StreamPort:  "StreamPort",

	Shards: "Shards",
	Shard:  "Shard",

	Assets: "Assets",
	Asset:  "Asset",

	StreamAsset: "StreamAsset",

	Up: "Up",
}

func genEndpoint(fmtStr string) Endpoint {
	if !strings.Contains(fmtStr, "%s") {
		return Endpoint(fmtStr)
	}

	return Endpoint(fmt.Sprintf(fmtStr, apiVersion))
}

// Format fills an endpoint's wildcards with args and prepends the server
// base URL.
func (e Endpoint) Format(server string, args ...string) string {
	strEndpoint := string(e)
	for _, arg := range args {
		strEndpoint = strings.Replace(strEndpoint, "*", arg, 1)
	}

	// Remove remaining wildcards
	strEndpoint = strings.ReplaceAll(strEndpoint, "*", "")

	server = strings.TrimSuffix(server, "/")
	strEndpoint = strings.TrimPrefix(strEndpoint, "/")
	url := fmt.Sprintf("%s/%s", server, strEndpoint)
	return url
}
