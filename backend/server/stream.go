package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"shardvault/backend/crypto"
	"shardvault/backend/db"
	"shardvault/backend/state"
	"shardvault/backend/utils"
	"shardvault/backend/vault"
	"shardvault/shared/constants"
	"shardvault/shared/endpoints"
)

// StreamAssetHandler serves a decrypted asset, honoring a single byte range
// so video elements can seek. Decrypted contents are cached whole; range
// requests after the first slice the cached copy instead of re-reading and
// re-decrypting the blob.
func StreamAssetHandler(w http.ResponseWriter, req *http.Request, appCtx *state.Context) {
	segments := utils.GetTrailingURLSegments(req.URL.Path, endpoints.StreamAsset)
	if len(segments) == 0 || len(segments[0]) == 0 {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}

	id := segments[0]

	cached, hasCached := appCtx.Cache.Get(id)

	// The mime type always comes fresh from the store, so an asset whose
	// row is gone returns 404 even while its bytes are still cached
	var mimeType string
	err := appCtx.WithSession(func(session *vault.Session) error {
		var err error
		mimeType, err = session.Store().GetAssetMimeType(id)
		return err
	})
	if err != nil {
		writeStreamError(w, err)
		return
	}

	data := cached
	if !hasCached {
		var blobPath string
		var key [constants.KeySize]byte

		// Copy the blob path and key under the session lock; the read
		// and decrypt happen after it's released
		err = appCtx.WithSession(func(session *vault.Session) error {
			filePath, err := session.Store().GetAssetFilePath(id)
			if err != nil {
				return err
			}

			blobPath = session.AssetPath(filePath)
			key = session.Key()
			return nil
		})
		if err != nil {
			writeStreamError(w, err)
			return
		}

		if _, err = os.Stat(blobPath); err != nil {
			http.Error(w, "File not found on disk", http.StatusNotFound)
			return
		}

		encrypted, err := os.ReadFile(blobPath)
		if err != nil {
			http.Error(w, "Failed to read file", http.StatusInternalServerError)
			return
		}

		data, err = crypto.Decrypt(key, encrypted)
		if err != nil {
			http.Error(w, "Failed to decrypt", http.StatusInternalServerError)
			return
		}

		appCtx.Cache.Put(id, data)
	}

	writeAssetResponse(w, req, mimeType, data)
}

func writeStreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, state.VaultLockedError) {
		http.Error(w, "Vault locked", http.StatusForbidden)
	} else if errors.Is(err, db.AssetNotFoundError) {
		http.Error(w, "Asset not found", http.StatusNotFound)
	} else {
		http.Error(w, "Error reading asset metadata", http.StatusInternalServerError)
	}
}

// writeAssetResponse writes data in full, or just the requested slice of it
// when the request carries a byte range. A malformed range value degrades to
// byte 0 for the start and the final byte for the end rather than failing;
// only a range that lands entirely outside the asset is unsatisfiable.
func writeAssetResponse(w http.ResponseWriter, req *http.Request, mimeType string, data []byte) {
	total := uint64(len(data))

	rangeHeader := req.Header.Get("Range")
	if strings.HasPrefix(rangeHeader, "bytes=") {
		parts := strings.Split(strings.TrimPrefix(rangeHeader, "bytes="), "-")

		start, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			start = 0
		}

		// Wraps when total is 0, but no range is satisfiable against
		// an empty asset anyway
		end := total - 1
		if len(parts) > 1 && len(parts[1]) > 0 {
			if parsed, err := strconv.ParseUint(parts[1], 10, 64); err == nil {
				end = parsed
			}
		}

		if start <= end && start < total {
			if end > total-1 {
				end = total - 1
			}

			chunk := data[start : end+1]

			w.Header().Set("Content-Type", mimeType)
			w.Header().Set("Content-Range",
				fmt.Sprintf("bytes %d-%d/%d", start, end, total))
			w.Header().Set("Content-Length", strconv.Itoa(len(chunk)))
			w.Header().Set("Accept-Ranges", "bytes")
			w.WriteHeader(http.StatusPartialContent)
			_, _ = w.Write(chunk)
		} else {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", total))
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		}

		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Accept-Ranges", "bytes")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
