package internal

import "shardvault/cli/models"

type EventStatus int

const (
	StatusInvalid EventStatus = iota
	StatusOk
	StatusCanceled
)

// Event carries the outcome of a subview back to the table model that
// requested it.
type Event struct {
	Value  string
	Status EventStatus
	Shard  models.ShardItem
	Asset  models.AssetItem
	Type   RequestType
}
