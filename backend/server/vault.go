package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"shardvault/backend/config"
	"shardvault/backend/state"
	"shardvault/backend/utils"
	"shardvault/backend/vault"
	"shardvault/shared"
	"shardvault/shared/constants"
)

// UnlockHandler opens the vault named in the request, initializing a new
// vault if the directory doesn't hold one yet. An omitted path falls back to
// the configured vault directory. A successful unlock replaces any session
// that was already open.
func UnlockHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	var unlockReq shared.UnlockRequest
	err := utils.LimitedJSONReader(w, req.Body).Decode(&unlockReq)
	if err != nil {
		log.Printf("Error decoding request body: %v\n", err)
		http.Error(w, "Error decoding request body", http.StatusBadRequest)
		return
	}

	if utils.IsAnyStringMissing(unlockReq.Password) {
		http.Error(w, "Missing password", http.StatusBadRequest)
		return
	}

	root := unlockReq.Path
	if len(root) == 0 {
		root = config.ShardVaultConfig.VaultDir
	}

	session, err := vault.Unlock(root, unlockReq.Password)
	if err != nil {
		log.Printf("Error unlocking vault: %v\n", err)

		if errors.Is(err, vault.InvalidPasswordError) {
			http.Error(w, "Invalid password", http.StatusUnauthorized)
		} else if errors.Is(err, vault.MissingSaltError) {
			http.Error(w, "Salt file missing", http.StatusUnprocessableEntity)
		} else {
			http.Error(w, "Error unlocking vault", http.StatusInternalServerError)
		}

		return
	}

	appCtx.Unlock(session)
	log.Printf("Vault unlocked: %s\n", session.Root())

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// LockHandler closes the current session. Locking an already locked vault
// still returns OK.
func LockHandler(w http.ResponseWriter, _ *http.Request, appCtx *state.Context) {
	appCtx.Lock()

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// VaultStatusHandler reports whether the queried directory holds an existing
// vault, plus whether this server currently has a vault unlocked. An
// explicitly queried path must exist; the configured default is created
// lazily on first unlock, so a missing default reads as a new vault.
func VaultStatusHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	root := req.URL.Query().Get("path")
	explicitPath := len(root) > 0
	if !explicitPath {
		root = config.ShardVaultConfig.VaultDir
	}

	status, err := vault.Status(root)
	if err != nil {
		if explicitPath {
			http.Error(w, "Invalid path", http.StatusBadRequest)
			return
		}

		status = constants.VaultStatusNew
	}

	_ = json.NewEncoder(w).Encode(shared.VaultStatusResponse{
		Status:   status,
		Unlocked: appCtx.Unlocked(),
	})
}

// StreamPortHandler returns the streaming listener's port so clients can
// build asset URLs.
func StreamPortHandler(w http.ResponseWriter, _ *http.Request, appCtx *state.Context) {
	_ = json.NewEncoder(w).Encode(shared.StreamPortResponse{
		Port: appCtx.StreamPort(),
	})
}

// UpHandler is used as the health check endpoint for scripts waiting on the
// daemon to start.
func UpHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
