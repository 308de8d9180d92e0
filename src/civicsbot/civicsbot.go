package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/RaffayA04/civics-mvp/src/civicsbot/bot"
	"github.com/RaffayA04/civics-mvp/src/civicsbot/config"
)

func main() {
	cfg := config.Load()

	b, err := bot.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	log.Println("Civics bot is running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
	log.Println("Civics bot stopped gracefully")
}
