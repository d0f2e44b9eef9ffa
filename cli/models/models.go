package models

import "time"

// ShardItem is a shard record shaped for display, with parsed timestamps.
type ShardItem struct {
	ID      string
	Title   string
	Content string
	Tags    []string
	Created time.Time
	Updated time.Time
}

// AssetItem is an asset record shaped for display. Linked reports whether a
// shard currently owns the asset.
type AssetItem struct {
	ID       string
	Name     string
	FilePath string
	MimeType string
	Linked   bool
	Created  time.Time
}
