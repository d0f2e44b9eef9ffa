package shared

import (
	"fmt"

	"shardvault/shared/constants"
	"shardvault/shared/endpoints"
)

const constsJS = `
// Auto-generated from shared/js.go. Don't edit this manually.

export const Version = "%s";
export const AssetScheme = "%s";
export const AssetIDLength = %d;
export const SaltSize = %d;
export const KeySize = %d;
export const NonceSize = %d;
export const KeyIterations = %d;
export const MaxCachedAssets = %d;
export const VaultStatusNew = "%s";
export const VaultStatusExisting = "%s";`

const endpointsHeadJS = `
// Auto-generated from shared/js.go. Don't edit this manually.

export type Endpoint = {
    path: string
}

export class Endpoints {`

const endpointsTailJS = `

    static format(endpoint: Endpoint, ...args: string[]): string {
        let path = endpoint.path;
        for (let arg of args) {
            path = path.replace("*", arg);
        }

        return path;
    }
}
`

const endpointEntry = `
    static %s: Endpoint = {path: "%s"};`

// GenerateSharedJS renders the shared constants and endpoints as TypeScript
// for clients that talk to the daemon directly, like streaming players.
func GenerateSharedJS() (string, string) {
	jsConsts := fmt.Sprintf(constsJS,
		constants.VERSION,
		constants.AssetScheme,
		constants.AssetIDLength,
		constants.SaltSize,
		constants.KeySize,
		constants.NonceSize,
		constants.KeyIterations,
		constants.MaxCachedAssets,
		constants.VaultStatusNew,
		constants.VaultStatusExisting)

	jsEndpoints := endpointsHeadJS
	for apiEndpoint, varName := range endpoints.JSVarNameMap {
		jsEndpoints += fmt.Sprintf(endpointEntry, varName, apiEndpoint)
	}

	jsEndpoints += endpointsTailJS
	return jsConsts, jsEndpoints
}
