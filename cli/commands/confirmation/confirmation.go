package confirmation

import (
	"fmt"

	"shardvault/cli/commands/internal"
)

func GenConfirmMsg(requestType internal.RequestType, name string) (string, string) {
	switch requestType {
	case internal.DeleteShardRequest:
		return fmt.Sprintf("Are you sure you want to delete shard '%s'?", name),
			"WARNING: Assets owned by this shard are deleted with it!"
	case internal.DeleteAssetRequest:
		return fmt.Sprintf("Are you sure you want to delete asset '%s'?", name),
			"WARNING: This cannot be undone!"
	}

	return "", ""
}
