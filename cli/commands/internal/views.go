package internal

import "shardvault/cli/models"

type View int

const (
	NullView View = iota
	ShardsView
	EditorView
	AssetsView
	ImportView
	PreviewView
	ConfirmationView
)

type RequestType int

const (
	InvalidRequest RequestType = iota
	NewShardRequest
	EditShardRequest
	DeleteShardRequest
	ImportAssetRequest
	DeleteAssetRequest
	PreviewAssetRequest
)

// ViewRequest asks the command loop to run a different view, optionally
// carrying the item the request targets.
type ViewRequest struct {
	View  View
	Type  RequestType
	Shard models.ShardItem
	Asset models.AssetItem
}
