// Package civic queries the Google Civic Information API for voter
// and election data tied to an address.
package civic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/RaffayA04/civics-mvp/src/shared/civicerr"
	"github.com/RaffayA04/civics-mvp/src/shared/webclient"
)

const DefaultBaseURL = "https://www.googleapis.com/civicinfo/v2"

// testElectionID is the permanent placeholder election the API always
// lists first.
const testElectionID = "2000"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, DefaultBaseURL)
}

func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: webclient.NewDefault(webclient.DefaultTimeout),
	}
}

// VoterInfo looks up voter information for a raw address. The payload
// is opaque: a decoded JSON object handed through to the caller.
func (c *Client) VoterInfo(ctx context.Context, address string) (map[string]any, error) {
	body, err := c.get(ctx, "/voterinfo", url.Values{"address": {address}})
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, civicerr.Upstream("civic decode response", err)
	}
	return payload, nil
}

// NextElectionID returns the ID of the next real election known to
// the API, skipping the permanent test election. Falls back to the
// first listed election when only the test entry exists.
func (c *Client) NextElectionID(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/elections", nil)
	if err != nil {
		return "", err
	}
	var payload struct {
		Elections []struct {
			ID string `json:"id"`
		} `json:"elections"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", civicerr.Upstream("civic decode response", err)
	}
	if len(payload.Elections) == 0 {
		return "", civicerr.Upstream("civic returned no elections", nil)
	}
	for _, e := range payload.Elections {
		if e.ID != testElectionID {
			return e.ID, nil
		}
	}
	return payload.Elections[0].ID, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, civicerr.Config("GOOGLE_CIVIC_KEY is not set")
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, civicerr.Upstream("civic request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, civicerr.Upstream("civic read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, civicerr.Upstream(
			fmt.Sprintf("civic status %d: %s", resp.StatusCode, apiErrorDetail(body)), nil)
	}
	return body, nil
}

// apiErrorDetail pulls the message out of a Google API error envelope
// when present, otherwise returns a trimmed body snippet. The API key
// travels in the query string and must never appear here.
func apiErrorDetail(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
