package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"shardvault/cli/requests"
	"shardvault/cli/utils"
	"shardvault/shared"
	"shardvault/shared/endpoints"
)

// Unlock opens the vault at the given path, creating it if the directory
// doesn't hold one yet. An empty path lets the daemon fall back to its
// configured vault directory.
func (ctx *Context) Unlock(path, password string) error {
	reqData, err := json.Marshal(shared.UnlockRequest{
		Path:     path,
		Password: password,
	})
	if err != nil {
		return err
	}

	reqURL := endpoints.VaultUnlock.Format(ctx.Server)
	resp, err := requests.PostRequest(reqURL, reqData)
	if err != nil {
		return err
	} else if resp.StatusCode != http.StatusOK {
		return utils.ParseHTTPError(resp)
	}

	return nil
}

// Lock closes the daemon's current vault session.
func (ctx *Context) Lock() error {
	reqURL := endpoints.VaultLock.Format(ctx.Server)
	resp, err := requests.PostRequest(reqURL, nil)
	if err != nil {
		return err
	} else if resp.StatusCode != http.StatusOK {
		return utils.ParseHTTPError(resp)
	}

	return nil
}

// VaultStatus reports whether the given directory holds an existing vault
// and whether the daemon has a vault unlocked.
func (ctx *Context) VaultStatus(path string) (shared.VaultStatusResponse, error) {
	reqURL := endpoints.VaultStatus.Format(ctx.Server)
	if len(path) > 0 {
		reqURL += "?path=" + url.QueryEscape(path)
	}

	resp, err := requests.GetRequest(reqURL)
	if err != nil {
		return shared.VaultStatusResponse{}, err
	} else if resp.StatusCode != http.StatusOK {
		return shared.VaultStatusResponse{}, utils.ParseHTTPError(resp)
	}

	var status shared.VaultStatusResponse
	err = json.NewDecoder(resp.Body).Decode(&status)
	if err != nil {
		return shared.VaultStatusResponse{}, err
	}

	return status, nil
}

// StreamPort returns the port of the daemon's loopback streaming listener.
func (ctx *Context) StreamPort() (int, error) {
	reqURL := endpoints.StreamPort.Format(ctx.Server)
	resp, err := requests.GetRequest(reqURL)
	if err != nil {
		return 0, err
	} else if resp.StatusCode != http.StatusOK {
		return 0, utils.ParseHTTPError(resp)
	}

	var portResp shared.StreamPortResponse
	err = json.NewDecoder(resp.Body).Decode(&portResp)
	if err != nil {
		return 0, err
	}

	return portResp.Port, nil
}

// IsUp checks whether the daemon is reachable.
func (ctx *Context) IsUp() bool {
	reqURL := endpoints.Up.Format(ctx.Server)
	resp, err := requests.GetRequest(reqURL)
	return err == nil && resp.StatusCode == http.StatusOK
}
