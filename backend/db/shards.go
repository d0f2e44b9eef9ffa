package db

import (
	"database/sql"
	"encoding/json"
	"errors"

	"shardvault/shared"
)

var ShardNotFoundError = errors.New("shard not found")

func (s *Store) InsertShard(shard shared.Shard) error {
	tagsJSON, err := json.Marshal(shard.Tags)
	if err != nil {
		return err
	}

	q := `INSERT INTO shards
	      (id, title, content, tags, created_at, updated_at)
	      VALUES (?, ?, ?, ?, ?, ?)`
	_, err = s.db.Exec(q, shard.ID, shard.Title, shard.Content,
		string(tagsJSON), shard.CreatedAt, shard.UpdatedAt)
	return err
}

// GetShards returns every shard in the vault, most recently updated first.
func (s *Store) GetShards() ([]shared.Shard, error) {
	q := `SELECT id, title, content, tags, created_at, updated_at
	      FROM shards
	      ORDER BY updated_at DESC`
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	shards := []shared.Shard{}
	for rows.Next() {
		var shard shared.Shard
		var tagsJSON sql.NullString

		err = rows.Scan(&shard.ID, &shard.Title, &shard.Content,
			&tagsJSON, &shard.CreatedAt, &shard.UpdatedAt)
		if err != nil {
			return nil, err
		}

		// Missing or unparseable tags are treated as empty
		shard.Tags = []string{}
		if tagsJSON.Valid {
			var tags []string
			if err := json.Unmarshal([]byte(tagsJSON.String), &tags); err == nil && tags != nil {
				shard.Tags = tags
			}
		}

		shards = append(shards, shard)
	}

	return shards, rows.Err()
}

// UpdateShard rewrites a shard's contents and bumps updated_at, returning
// the shard's original creation timestamp.
func (s *Store) UpdateShard(id, title, content string, tags []string, updatedAt string) (string, error) {
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}

	q := `UPDATE shards
	      SET title = ?, content = ?, tags = ?, updated_at = ?
	      WHERE id = ?`
	_, err = s.db.Exec(q, title, content, string(tagsJSON), updatedAt, id)
	if err != nil {
		return "", err
	}

	var createdAt string
	err = s.db.QueryRow(
		`SELECT created_at FROM shards WHERE id = ?`,
		id).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ShardNotFoundError
	}

	return createdAt, err
}

func (s *Store) DeleteShard(id string) error {
	q := `DELETE FROM shards
	      WHERE id = ?`
	_, err := s.db.Exec(q, id)
	return err
}
