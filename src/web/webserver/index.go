package webserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RaffayA04/civics-mvp/src/shared/civicerr"
	"github.com/RaffayA04/civics-mvp/src/shared/openstates"
	"github.com/RaffayA04/civics-mvp/src/shared/usstate"
)

const (
	billWindowDays = 14
	billLimit      = 20
)

// PageContext is the per-request template context. Errors are
// additive: a failure in one lookup never clears results from
// another.
type PageContext struct {
	Address   string
	StateName string
	Bills     []openstates.Bill
	Vote      map[string]any
	Errors    []string
}

type Index struct {
	bills BillSource
	voter VoterSource
}

func NewIndex(bills BillSource, voter VoterSource) Index {
	return Index{bills: bills, voter: voter}
}

// Show renders the empty submission form.
func (h Index) Show(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", PageContext{})
}

// Submit handles a posted address and renders everything that could
// be gathered for it.
func (h Index) Submit(c *gin.Context) {
	address := strings.TrimSpace(c.PostForm("address"))
	page := h.buildPage(c.Request.Context(), address)
	c.HTML(http.StatusOK, "index.html", page)
}

func (h Index) buildPage(ctx context.Context, address string) PageContext {
	page := PageContext{Address: address}

	page.StateName = usstate.ResolveFromAddress(address)
	if page.StateName == "" {
		page.Errors = append(page.Errors,
			"Could not parse state from your address. Include the 2-letter state code (e.g., WA) and ZIP.")
	} else {
		bills, err := h.bills.RecentBills(ctx, page.StateName, billWindowDays, billLimit)
		if err != nil {
			log.Printf("bills lookup failed for %q: %v", page.StateName, err)
			page.Errors = append(page.Errors, "Bills lookup failed: "+civicerr.UserMessage(err))
		} else {
			page.Bills = bills
		}
	}

	// Voter info is not gated on state resolution, only on the
	// address being non-empty.
	if address != "" {
		vote, err := h.voter.VoterInfo(ctx, address)
		if err != nil {
			log.Printf("voter info lookup failed: %v", err)
			page.Errors = append(page.Errors, "Voting info lookup failed: "+civicerr.UserMessage(err))
		} else {
			page.Vote = vote
		}
	}

	return page
}

func prettyJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
