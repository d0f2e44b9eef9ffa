package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"shardvault/backend/config"
	"shardvault/backend/db"
	"shardvault/backend/state"
	"shardvault/backend/utils"
	"shardvault/backend/vault"
	"shardvault/shared"
	"shardvault/shared/endpoints"
)

// ShardsHandler directs requests to the appropriate handler for creating or
// listing shards
func ShardsHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	switch req.Method {
	case http.MethodPost:
		newShardHandler(w, req, appCtx)
	case http.MethodGet:
		listShardsHandler(w, req, appCtx)
	}
}

// ShardHandler directs requests targeting a single shard, identified by a
// trailing id segment
func ShardHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	segments := utils.GetTrailingURLSegments(req.URL.Path, endpoints.Shard)
	if len(segments) == 0 || len(segments[0]) == 0 {
		http.Error(w, "Missing shard id", http.StatusBadRequest)
		return
	}

	id := segments[0]

	switch req.Method {
	case http.MethodPut:
		updateShardHandler(w, req, appCtx, id)
	case http.MethodDelete:
		deleteShardHandler(w, req, appCtx, id)
	}
}

func newShardHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	var upload shared.ShardUpload
	err := utils.SizedJSONReader(w, req.Body,
		config.ShardVaultConfig.MaxImportSize).Decode(&upload)
	if err != nil {
		log.Printf("Error decoding request body: %v\n", err)
		http.Error(w, "Error decoding request body", http.StatusBadRequest)
		return
	}

	var shard shared.Shard
	err = appCtx.WithSession(func(session *vault.Session) error {
		var err error
		shard, err = session.CreateShard(upload)
		return err
	})
	if err != nil {
		writeVaultError(w, err, "Error creating shard")
		return
	}

	_ = json.NewEncoder(w).Encode(shard)
}

func listShardsHandler(w http.ResponseWriter, _ *http.Request, appCtx *state.Context) {
	var shards []shared.Shard
	err := appCtx.WithSession(func(session *vault.Session) error {
		var err error
		shards, err = session.Store().GetShards()
		return err
	})
	if err != nil {
		writeVaultError(w, err, "Error fetching shards")
		return
	}

	_ = json.NewEncoder(w).Encode(shards)
}

func updateShardHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context, id string) {
	var upload shared.ShardUpload
	err := utils.SizedJSONReader(w, req.Body,
		config.ShardVaultConfig.MaxImportSize).Decode(&upload)
	if err != nil {
		log.Printf("Error decoding request body: %v\n", err)
		http.Error(w, "Error decoding request body", http.StatusBadRequest)
		return
	}

	var shard shared.Shard
	err = appCtx.WithSession(func(session *vault.Session) error {
		var err error
		shard, err = session.UpdateShard(id, upload)
		return err
	})
	if err != nil {
		if errors.Is(err, db.ShardNotFoundError) {
			http.Error(w, "Shard not found", http.StatusNotFound)
			return
		}

		writeVaultError(w, err, "Error updating shard")
		return
	}

	_ = json.NewEncoder(w).Encode(shard)
}

// deleteShardHandler removes a shard and cascades the delete down to every
// asset the shard owns, dropping their cache entries once the session lock
// has been released. Deleting an unknown id is a no-op.
func deleteShardHandler(w http.ResponseWriter, _ *http.Request, appCtx *state.Context, id string) {
	var assetIDs []string
	err := appCtx.WithSession(func(session *vault.Session) error {
		var err error
		assetIDs, err = session.DeleteShard(id)
		return err
	})
	if err != nil {
		writeVaultError(w, err, "Error deleting shard")
		return
	}

	for _, assetID := range assetIDs {
		appCtx.Cache.Remove(assetID)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// writeVaultError maps a failed vault operation to a response, keeping the
// locked-vault case distinct from real failures.
func writeVaultError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, state.VaultLockedError) {
		http.Error(w, "Vault locked", http.StatusForbidden)
		return
	}

	log.Printf("%s: %v\n", msg, err)
	http.Error(w, msg, http.StatusInternalServerError)
}
