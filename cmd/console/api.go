package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jwebster45206/ascent-engine/pkg/world"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type gameResponse struct {
	Message string           `json:"message"`
	State   *world.GameState `json:"state"`
	Outcome string           `json:"outcome,omitempty"`
}

// APIClient talks to the ascent-engine HTTP API.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	return &APIClient{baseURL: baseURL, client: client}
}

func (a *APIClient) Healthy() bool {
	resp, err := a.client.Get(a.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// State returns the player's view of the current game, or nil when no game
// exists yet.
func (a *APIClient) State() (*world.GameState, error) {
	var gs world.GameState
	status, err := a.do(http.MethodGet, "/api/state", nil, &gs)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// The state endpoint returns the whole document.
	return gs.PlayerView()
}

func (a *APIClient) Init(worldSetting, characterDescription string) (*world.GameState, error) {
	var resp gameResponse
	body := map[string]string{
		"worldSetting":         worldSetting,
		"characterDescription": characterDescription,
	}
	if _, err := a.do(http.MethodPost, "/api/init", body, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (a *APIClient) Generate(input string) (*world.GameState, error) {
	var resp gameResponse
	if _, err := a.do(http.MethodPost, "/api/generate", map[string]string{"input": input}, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (a *APIClient) Reset() error {
	_, err := a.do(http.MethodDelete, "/api/state", nil, nil)
	return err
}

func (a *APIClient) do(method, path string, in, out any) (int, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.baseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return resp.StatusCode, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		if errorResp.Details != "" {
			return resp.StatusCode, fmt.Errorf("%s: %s", errorResp.Error, errorResp.Details)
		}
		return resp.StatusCode, fmt.Errorf("%s", errorResp.Error)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
