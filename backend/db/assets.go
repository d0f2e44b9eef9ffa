package db

import (
	"database/sql"
	"errors"

	"shardvault/shared"
)

var AssetNotFoundError = errors.New("asset not found")

// InsertAsset stores a new asset row. Imported assets start unowned, with
// shard_id assigned once a shard referencing the asset is saved.
func (s *Store) InsertAsset(asset shared.Asset) error {
	q := `INSERT INTO assets
	      (id, shard_id, file_path, original_name, mime_type, created_at)
	      VALUES (?, NULL, ?, ?, ?, ?)`
	_, err := s.db.Exec(q, asset.ID, asset.FilePath,
		asset.OriginalName, asset.MimeType, asset.CreatedAt)
	return err
}

func (s *Store) GetAssets() ([]shared.Asset, error) {
	q := `SELECT id, shard_id, file_path, original_name, mime_type, created_at
	      FROM assets
	      ORDER BY created_at DESC`
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	assets := []shared.Asset{}
	for rows.Next() {
		var asset shared.Asset
		var shardID sql.NullString

		err = rows.Scan(&asset.ID, &shardID, &asset.FilePath,
			&asset.OriginalName, &asset.MimeType, &asset.CreatedAt)
		if err != nil {
			return nil, err
		}

		asset.ShardID = shardID.String
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

// GetAssetsByShard returns the assets owned by a shard, used when cascading
// a shard delete down to its files.
func (s *Store) GetAssetsByShard(shardID string) ([]shared.Asset, error) {
	q := `SELECT id, file_path
	      FROM assets
	      WHERE shard_id = ?`
	rows, err := s.db.Query(q, shardID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	assets := []shared.Asset{}
	for rows.Next() {
		var asset shared.Asset

		err = rows.Scan(&asset.ID, &asset.FilePath)
		if err != nil {
			return nil, err
		}

		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

// GetAssetMimeType looks up just the mime type, which is needed for response
// headers on every streaming request regardless of cache state.
func (s *Store) GetAssetMimeType(id string) (string, error) {
	var mimeType string
	err := s.db.QueryRow(
		`SELECT mime_type FROM assets WHERE id = ?`,
		id).Scan(&mimeType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", AssetNotFoundError
	}

	return mimeType, err
}

func (s *Store) GetAssetFilePath(id string) (string, error) {
	var filePath string
	err := s.db.QueryRow(
		`SELECT file_path FROM assets WHERE id = ?`,
		id).Scan(&filePath)
	if errors.Is(err, sql.ErrNoRows) {
		return "", AssetNotFoundError
	}

	return filePath, err
}

// SetAssetOwner reassigns an asset to a shard, overwriting any previous
// owner. Returns false if no asset row matched the id.
func (s *Store) SetAssetOwner(assetID, shardID string) (bool, error) {
	q := `UPDATE assets
	      SET shard_id = ?
	      WHERE id = ?`
	result, err := s.db.Exec(q, shardID, assetID)
	if err != nil {
		return false, err
	}

	count, err := result.RowsAffected()
	return count > 0, err
}

func (s *Store) DeleteAsset(id string) error {
	q := `DELETE FROM assets
	      WHERE id = ?`
	_, err := s.db.Exec(q, id)
	return err
}

func (s *Store) DeleteAssetsByShard(shardID string) error {
	q := `DELETE FROM assets
	      WHERE shard_id = ?`
	_, err := s.db.Exec(q, shardID)
	return err
}
