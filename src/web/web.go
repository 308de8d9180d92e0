package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RaffayA04/civics-mvp/src/shared/civic"
	"github.com/RaffayA04/civics-mvp/src/shared/openstates"
	"github.com/RaffayA04/civics-mvp/src/web/config"
	"github.com/RaffayA04/civics-mvp/src/web/webserver"
)

func main() {
	cfg := config.Load()

	bills := openstates.NewClient(cfg.OpenStatesKey)
	voter := civic.NewClient(cfg.GoogleCivicKey)

	router := webserver.New(cfg, bills, voter)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("civics web listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
	log.Println("civics web stopped")
}
