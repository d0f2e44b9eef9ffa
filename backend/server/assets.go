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

// AssetsHandler directs requests to the appropriate handler for importing or
// listing assets
func AssetsHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	switch req.Method {
	case http.MethodPost:
		importAssetHandler(w, req, appCtx)
	case http.MethodGet:
		listAssetsHandler(w, req, appCtx)
	}
}

// AssetHandler handles deletion of a single asset, identified by a trailing
// id segment
func AssetHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	segments := utils.GetTrailingURLSegments(req.URL.Path, endpoints.Asset)
	if len(segments) == 0 || len(segments[0]) == 0 {
		http.Error(w, "Missing asset id", http.StatusBadRequest)
		return
	}

	deleteAssetHandler(w, req, appCtx, segments[0])
}

func importAssetHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	maxSize := config.ShardVaultConfig.MaxImportSize

	// Pad the body limit for base64 and the surrounding JSON fields
	var importReq shared.ImportRequest
	err := utils.SizedJSONReader(w, req.Body,
		maxSize+maxSize/3+1024).Decode(&importReq)
	if err != nil {
		log.Printf("Error decoding request body: %v\n", err)
		http.Error(w, "Error decoding request body", http.StatusBadRequest)
		return
	}

	if int64(len(importReq.Data)) > maxSize {
		http.Error(w, "Asset exceeds maximum import size",
			http.StatusRequestEntityTooLarge)
		return
	}

	var asset shared.Asset
	err = appCtx.WithSession(func(session *vault.Session) error {
		var err error
		asset, err = session.ImportAsset(
			importReq.Name,
			importReq.Extension,
			importReq.Data)
		return err
	})
	if err != nil {
		writeVaultError(w, err, "Error importing asset")
		return
	}

	_ = json.NewEncoder(w).Encode(asset)
}

func listAssetsHandler(w http.ResponseWriter, _ *http.Request, appCtx *state.Context) {
	var assets []shared.Asset
	err := appCtx.WithSession(func(session *vault.Session) error {
		var err error
		assets, err = session.Store().GetAssets()
		return err
	})
	if err != nil {
		writeVaultError(w, err, "Error fetching assets")
		return
	}

	_ = json.NewEncoder(w).Encode(assets)
}

// deleteAssetHandler removes an asset's blob and row, then drops its cache
// entry once the session lock has been released. The cache entry must go so
// a deleted asset can never be served from memory.
func deleteAssetHandler(w http.ResponseWriter, _ *http.Request, appCtx *state.Context, id string) {
	err := appCtx.WithSession(func(session *vault.Session) error {
		return session.DeleteAsset(id)
	})
	if err != nil {
		if errors.Is(err, db.AssetNotFoundError) {
			http.Error(w, "Asset not found", http.StatusNotFound)
			return
		}

		writeVaultError(w, err, "Error deleting asset")
		return
	}

	appCtx.Cache.Remove(id)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
