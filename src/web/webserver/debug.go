package webserver

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RaffayA04/civics-mvp/src/shared/civicerr"
	"github.com/RaffayA04/civics-mvp/src/web/config"
)

// Debug exposes read-only operational endpoints. Key material is
// reported as presence booleans only, never values.
type Debug struct {
	cfg    config.Config
	voter  VoterSource
	engine *gin.Engine
}

func NewDebug(cfg config.Config, voter VoterSource, engine *gin.Engine) Debug {
	return Debug{cfg: cfg, voter: voter, engine: engine}
}

func (h Debug) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h Debug) Info(c *gin.Context) {
	var b strings.Builder

	cwd, _ := os.Getwd()
	fmt.Fprintf(&b, "cwd: %s\n", cwd)
	_, envErr := os.Stat(".env")
	fmt.Fprintf(&b, ".env exists: %v\n", envErr == nil)
	fmt.Fprintf(&b, "OPENSTATES_KEY: %v\n", h.cfg.OpenStatesKey != "")
	fmt.Fprintf(&b, "GOOGLE_CIVIC_KEY: %v\n", h.cfg.GoogleCivicKey != "")

	b.WriteString("routes:\n")
	routes := h.engine.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	for _, rt := range routes {
		fmt.Fprintf(&b, "  %s -> %s\n", rt.Path, rt.Method)
	}

	c.String(http.StatusOK, b.String())
}

func (h Debug) Keys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"OPENSTATES_KEY":   h.cfg.OpenStatesKey != "",
		"GOOGLE_CIVIC_KEY": h.cfg.GoogleCivicKey != "",
	})
}

func (h Debug) Election(c *gin.Context) {
	id, err := h.voter.NextElectionID(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "error: %s", civicerr.UserMessage(err))
		return
	}
	c.String(http.StatusOK, "next electionId: %s", id)
}
