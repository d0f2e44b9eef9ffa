package api

import (
	"encoding/json"
	"log"
	"net/http"

	"shardvault/cli/requests"
	"shardvault/cli/utils"
	"shardvault/shared"
	"shardvault/shared/endpoints"
)

// CreateShard stores a new shard and returns the record the daemon created
// for it. Asset references in the content are linked as a side effect.
func (ctx *Context) CreateShard(upload shared.ShardUpload) (shared.Shard, error) {
	reqData, err := json.Marshal(upload)
	if err != nil {
		return shared.Shard{}, err
	}

	reqURL := endpoints.Shards.Format(ctx.Server)
	resp, err := requests.PostRequest(reqURL, reqData)
	if err != nil {
		return shared.Shard{}, err
	} else if resp.StatusCode != http.StatusOK {
		return shared.Shard{}, utils.ParseHTTPError(resp)
	}

	var shard shared.Shard
	err = json.NewDecoder(resp.Body).Decode(&shard)
	if err != nil {
		log.Println("Error decoding server response: ", err)
		return shared.Shard{}, err
	}

	return shard, nil
}

// GetShards fetches all shards, newest updates first.
func (ctx *Context) GetShards() ([]shared.Shard, error) {
	reqURL := endpoints.Shards.Format(ctx.Server)
	resp, err := requests.GetRequest(reqURL)
	if err != nil {
		return nil, err
	} else if resp.StatusCode != http.StatusOK {
		return nil, utils.ParseHTTPError(resp)
	}

	var shards []shared.Shard
	err = json.NewDecoder(resp.Body).Decode(&shards)
	if err != nil {
		return nil, err
	}

	return shards, nil
}

// UpdateShard replaces a shard's title, content, and tags.
func (ctx *Context) UpdateShard(id string, upload shared.ShardUpload) (shared.Shard, error) {
	reqData, err := json.Marshal(upload)
	if err != nil {
		return shared.Shard{}, err
	}

	reqURL := endpoints.Shard.Format(ctx.Server, id)
	resp, err := requests.PutRequest(reqURL, reqData)
	if err != nil {
		return shared.Shard{}, err
	} else if resp.StatusCode != http.StatusOK {
		return shared.Shard{}, utils.ParseHTTPError(resp)
	}

	var shard shared.Shard
	err = json.NewDecoder(resp.Body).Decode(&shard)
	if err != nil {
		return shared.Shard{}, err
	}

	return shard, nil
}

// DeleteShard removes a shard along with every asset it owns.
func (ctx *Context) DeleteShard(id string) error {
	reqURL := endpoints.Shard.Format(ctx.Server, id)
	resp, err := requests.DeleteRequest(reqURL, nil)
	if err != nil {
		return err
	} else if resp.StatusCode != http.StatusOK {
		return utils.ParseHTTPError(resp)
	}

	return nil
}
