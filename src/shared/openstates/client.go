// Package openstates queries the OpenStates v3 API for recently
// updated bills in a state.
package openstates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/RaffayA04/civics-mvp/src/shared/civicerr"
	"github.com/RaffayA04/civics-mvp/src/shared/webclient"
)

const DefaultBaseURL = "https://v3.openstates.org"

// Bill is the normalized view of one upstream bill.
type Bill struct {
	Title            string
	Identifier       string
	Status           string
	LatestActionDate string
	Link             string
}

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

type apiBill struct {
	ID            string `json:"id"`
	Identifier    string `json:"identifier"`
	Title         string `json:"title"`
	OpenstatesURL string `json:"openstates_url"`
	LatestAction  *struct {
		Description string `json:"description"`
		Date        string `json:"date"`
	} `json:"latest_action"`
}

// RecentBills returns bills for the given jurisdiction (full state
// name) updated within the last days, most recently updated first,
// capped at limit. Exactly one outbound call; upstream failures are
// returned as-is, never retried.
func (c *Client) RecentBills(ctx context.Context, stateName string, days, limit int) ([]Bill, error) {
	if c.apiKey == "" {
		return nil, civicerr.Config("OPENSTATES_KEY is not set")
	}

	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	q := url.Values{}
	q.Set("jurisdiction", stateName)
	q.Set("sort", "updated_desc")
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("updated_since", since)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bills?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, civicerr.Upstream("openstates request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, civicerr.Upstream("openstates read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, civicerr.Upstream(
			fmt.Sprintf("openstates status %d: %s", resp.StatusCode, snippet(body)), nil)
	}

	var payload struct {
		Results []apiBill `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, civicerr.Upstream("openstates decode response", err)
	}

	bills := make([]Bill, 0, len(payload.Results))
	for _, b := range payload.Results {
		bill := Bill{
			Title:      b.Title,
			Identifier: b.Identifier,
			Link:       b.OpenstatesURL,
		}
		if b.LatestAction != nil {
			bill.Status = b.LatestAction.Description
			bill.LatestActionDate = b.LatestAction.Date
		}
		if bill.Link == "" {
			bill.Link = "https://openstates.org/bill/" + b.ID
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
