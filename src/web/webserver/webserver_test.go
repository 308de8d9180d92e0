package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaffayA04/civics-mvp/src/shared/openstates"
	"github.com/RaffayA04/civics-mvp/src/web/config"
)

type stubBills struct {
	calls int
	state string
	days  int
	limit int
	bills []openstates.Bill
	err   error
}

func (s *stubBills) RecentBills(ctx context.Context, stateName string, days, limit int) ([]openstates.Bill, error) {
	s.calls++
	s.state = stateName
	s.days = days
	s.limit = limit
	return s.bills, s.err
}

type stubVoter struct {
	calls      int
	address    string
	payload    map[string]any
	err        error
	electionID string
	electErr   error
}

func (s *stubVoter) VoterInfo(ctx context.Context, address string) (map[string]any, error) {
	s.calls++
	s.address = address
	return s.payload, s.err
}

func (s *stubVoter) NextElectionID(ctx context.Context) (string, error) {
	return s.electionID, s.electErr
}

func testConfig() config.Config {
	return config.Config{
		Port:           "8080",
		OpenStatesKey:  "os-key",
		GoogleCivicKey: "",
		TemplatesGlob:  "../templates/*.html",
		StaticDir:      "../static",
	}
}

func newTestServer(bills *stubBills, voter *stubVoter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(testConfig(), bills, voter)
}

func postAddress(r *gin.Engine, address string) *httptest.ResponseRecorder {
	form := url.Values{"address": {address}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestShowEmptyForm(t *testing.T) {
	r := newTestServer(&stubBills{}, &stubVoter{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="address"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSubmitResolvesStateAndFetchesBills(t *testing.T) {
	bills := &stubBills{bills: []openstates.Bill{
		{Identifier: "HB 1001", Title: "Transit act", Link: "https://openstates.org/bill/abc"},
	}}
	voter := &stubVoter{payload: map[string]any{"election": map[string]any{"name": "General"}}}
	r := newTestServer(bills, voter)

	w := postAddress(r, "123 Main St, Seattle, WA 98101")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, bills.calls)
	assert.Equal(t, "Washington", bills.state)
	assert.Equal(t, 14, bills.days)
	assert.Equal(t, 20, bills.limit)
	assert.Equal(t, 1, voter.calls)
	assert.Equal(t, "123 Main St, Seattle, WA 98101", voter.address)

	body := w.Body.String()
	assert.Contains(t, body, "Washington")
	assert.Contains(t, body, "HB 1001")
	assert.Contains(t, body, "General")
}

func TestSubmitUnresolvedStateSkipsBillsButNotVoterInfo(t *testing.T) {
	bills := &stubBills{}
	voter := &stubVoter{payload: map[string]any{"election": "x"}}
	r := newTestServer(bills, voter)

	w := postAddress(r, "123 Main St, Anytown")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, bills.calls, "no partial bill lookup without a state")
	assert.Equal(t, 1, voter.calls, "voter lookup still attempted for a non-empty address")
	assert.Contains(t, w.Body.String(), "Could not parse state")
}

func TestSubmitEmptyAddress(t *testing.T) {
	bills := &stubBills{}
	voter := &stubVoter{}
	r := newTestServer(bills, voter)

	w := postAddress(r, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, bills.calls)
	assert.Equal(t, 0, voter.calls, "no voter lookup for an empty address")
	assert.Contains(t, w.Body.String(), "Could not parse state")
}

func TestSubmitErrorsAreIndependent(t *testing.T) {
	bills := &stubBills{err: errors.New("openstates status 502: upstream exploded")}
	voter := &stubVoter{payload: map[string]any{"pollingLocations": []any{}}}
	r := newTestServer(bills, voter)

	w := postAddress(r, "123 Main St, Seattle, WA 98101")
	body := w.Body.String()

	// The bill failure is reported and the voter result still renders.
	assert.Contains(t, body, "Bills lookup failed")
	assert.Contains(t, body, "upstream exploded")
	assert.Contains(t, body, "pollingLocations")
}

func TestSubmitVoterFailureKeepsBills(t *testing.T) {
	bills := &stubBills{bills: []openstates.Bill{{Identifier: "SB 2", Link: "https://openstates.org/bill/x"}}}
	voter := &stubVoter{err: errors.New("civic status 400: Failed to parse address")}
	r := newTestServer(bills, voter)

	w := postAddress(r, "123 Main St, Seattle, WA 98101")
	body := w.Body.String()

	assert.Contains(t, body, "Voting info lookup failed")
	assert.Contains(t, body, "SB 2")
}

func TestHealth(t *testing.T) {
	r := newTestServer(&stubBills{}, &stubVoter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestDebugKeysReportsPresenceOnly(t *testing.T) {
	r := newTestServer(&stubBills{}, &stubVoter{})

	req := httptest.NewRequest(http.MethodGet, "/debug/keys", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var payload map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.True(t, payload["OPENSTATES_KEY"])
	assert.False(t, payload["GOOGLE_CIVIC_KEY"])
	assert.NotContains(t, w.Body.String(), "os-key")
}

func TestDebugInfoListsRoutes(t *testing.T) {
	r := newTestServer(&stubBills{}, &stubVoter{})

	req := httptest.NewRequest(http.MethodGet, "/debug/info", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "routes:")
	assert.Contains(t, body, "/debug/election")
	assert.Contains(t, body, "OPENSTATES_KEY: true")
	assert.NotContains(t, body, "os-key")
}

func TestDebugElection(t *testing.T) {
	r := newTestServer(&stubBills{}, &stubVoter{electionID: "9181"})

	req := httptest.NewRequest(http.MethodGet, "/debug/election", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "next electionId: 9181", w.Body.String())
}

func TestDebugElectionError(t *testing.T) {
	r := newTestServer(&stubBills{}, &stubVoter{electErr: errors.New("civic status 403: key invalid")})

	req := httptest.NewRequest(http.MethodGet, "/debug/election", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "key invalid")
}
