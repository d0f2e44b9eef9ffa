package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"shardvault/cli/requests"
	"shardvault/cli/utils"
	"shardvault/shared"
	"shardvault/shared/endpoints"
)

// ImportAsset encrypts and stores a file's bytes in the vault. The extension
// picks the stored mime type; the name is kept for display.
func (ctx *Context) ImportAsset(name, extension string, data []byte) (shared.Asset, error) {
	reqData, err := json.Marshal(shared.ImportRequest{
		Name:      name,
		Extension: extension,
		Data:      data,
	})
	if err != nil {
		return shared.Asset{}, err
	}

	reqURL := endpoints.Assets.Format(ctx.Server)
	resp, err := requests.PostRequest(reqURL, reqData)
	if err != nil {
		return shared.Asset{}, err
	} else if resp.StatusCode != http.StatusOK {
		return shared.Asset{}, utils.ParseHTTPError(resp)
	}

	var asset shared.Asset
	err = json.NewDecoder(resp.Body).Decode(&asset)
	if err != nil {
		log.Println("Error decoding server response: ", err)
		return shared.Asset{}, err
	}

	return asset, nil
}

// GetAssets fetches all assets, newest first.
func (ctx *Context) GetAssets() ([]shared.Asset, error) {
	reqURL := endpoints.Assets.Format(ctx.Server)
	resp, err := requests.GetRequest(reqURL)
	if err != nil {
		return nil, err
	} else if resp.StatusCode != http.StatusOK {
		return nil, utils.ParseHTTPError(resp)
	}

	var assets []shared.Asset
	err = json.NewDecoder(resp.Body).Decode(&assets)
	if err != nil {
		return nil, err
	}

	return assets, nil
}

// DeleteAsset removes an asset's encrypted blob and metadata.
func (ctx *Context) DeleteAsset(id string) error {
	reqURL := endpoints.Asset.Format(ctx.Server, id)
	resp, err := requests.DeleteRequest(reqURL, nil)
	if err != nil {
		return err
	} else if resp.StatusCode != http.StatusOK {
		return utils.ParseHTTPError(resp)
	}

	return nil
}

// FetchAsset downloads an asset's decrypted bytes from the streaming
// listener. Returns the bytes and the asset's mime type.
func (ctx *Context) FetchAsset(port int, id string) ([]byte, string, error) {
	reqURL := endpoints.StreamAsset.Format(streamServer(port), id)
	resp, err := requests.GetRequest(reqURL)
	if err != nil {
		return nil, "", err
	} else if resp.StatusCode != http.StatusOK {
		return nil, "", utils.ParseHTTPError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// FetchAssetRange downloads a byte range of an asset from the streaming
// listener. An end value below zero leaves the range open ended.
func (ctx *Context) FetchAssetRange(port int, id string, start, end int64) ([]byte, error) {
	reqURL := endpoints.StreamAsset.Format(streamServer(port), id)
	resp, err := requests.GetRangeRequest(reqURL, start, end)
	if err != nil {
		return nil, err
	} else if resp.StatusCode != http.StatusPartialContent {
		return nil, utils.ParseHTTPError(resp)
	}

	return io.ReadAll(resp.Body)
}

// streamServer builds the base URL of the loopback streaming listener.
func streamServer(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}
