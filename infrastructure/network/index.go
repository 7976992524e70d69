package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetworkController is a thin JSON HTTP client for the external services
// this app talks to.
type NetworkController struct {
	BaseUrl string
	Client  *http.Client
}

func (network *NetworkController) httpClient() *http.Client {
	if network.Client == nil {
		network.Client = &http.Client{Timeout: 30 * time.Second}
	}
	return network.Client
}

func (network *NetworkController) Post(ctx context.Context, path string, headers map[string]string, body any) (*[]byte, *int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, network.BaseUrl+path, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := network.httpClient().Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &responseBody, &res.StatusCode, nil
}
