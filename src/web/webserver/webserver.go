package webserver

import (
	"context"
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RaffayA04/civics-mvp/src/shared/openstates"
	"github.com/RaffayA04/civics-mvp/src/web/config"
)

// BillSource is the recent-bills lookup consumed by the index page.
type BillSource interface {
	RecentBills(ctx context.Context, stateName string, days, limit int) ([]openstates.Bill, error)
}

// VoterSource is the voter-info lookup consumed by the index page and
// the election debug probe.
type VoterSource interface {
	VoterInfo(ctx context.Context, address string) (map[string]any, error)
	NextElectionID(ctx context.Context) (string, error)
}

func New(cfg config.Config, bills BillSource, voter VoterSource) *gin.Engine {
	r := gin.Default()

	r.Use(requestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}))

	r.SetFuncMap(template.FuncMap{"prettyJSON": prettyJSON})
	r.LoadHTMLGlob(cfg.TemplatesGlob)
	r.Static("/static", cfg.StaticDir)

	attachRoutes(r, cfg, bills, voter)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, bills BillSource, voter VoterSource) {
	idx := NewIndex(bills, voter)
	r.GET("/", idx.Show)
	r.POST("/", idx.Submit)

	dbg := NewDebug(cfg, voter, r)
	r.GET("/health", dbg.Health)
	r.GET("/debug/info", dbg.Info)
	r.GET("/debug/keys", dbg.Keys)
	r.GET("/debug/election", dbg.Election)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
