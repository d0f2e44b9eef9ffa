package shared

import (
	"fmt"
	"strings"

	"shardvault/shared/constants"
)

func ReadableFileSize(b int) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}

	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "kMGT"[exp])
}

// EscapeString escapes modifiers in a string that would otherwise be
// interpreted by a terminal or formatter.
func EscapeString(str string) string {
	return strings.ReplaceAll(str, "%", "%%")
}

// AssetReference formats an asset id as the reference string embedded in
// shard content (asset://<id>).
func AssetReference(id string) string {
	return constants.AssetScheme + id
}
