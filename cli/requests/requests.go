package requests

import (
	"bytes"
	"fmt"
	"net/http"

	"shardvault/shared/constants"
)

func GetRequest(url string) (*http.Response, error) {
	return sendRequest(http.MethodGet, url, nil)
}

func PostRequest(url string, data []byte) (*http.Response, error) {
	return sendRequest(http.MethodPost, url, data)
}

func PutRequest(url string, data []byte) (*http.Response, error) {
	return sendRequest(http.MethodPut, url, data)
}

func DeleteRequest(url string, data []byte) (*http.Response, error) {
	return sendRequest(http.MethodDelete, url, data)
}

// GetRangeRequest fetches a byte range of the target resource. An end value
// below zero leaves the range open ended.
func GetRangeRequest(url string, start, end int64) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if end < 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", start))
	} else {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))
	}

	req.Header.Set("User-Agent", constants.CLIUserAgent)

	return new(http.Transport).RoundTrip(req)
}

func sendRequest(method, url string, data []byte) (*http.Response, error) {
	req, err := http.NewRequest(method, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", constants.CLIUserAgent)

	resp, err := new(http.Transport).RoundTrip(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
