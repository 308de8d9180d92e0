package bot

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/RaffayA04/civics-mvp/src/civicsbot/components"
	"github.com/RaffayA04/civics-mvp/src/civicsbot/config"
	"github.com/RaffayA04/civics-mvp/src/shared/openstates"
)

const (
	rateLimitWindow   = 3 * time.Second
	rateLimitSweepIvl = 10 * time.Minute
)

// BillFetcher performs the recent-bills lookup. Injected so handler
// logic is testable without network access.
type BillFetcher func(ctx context.Context, stateName string, days, limit int) ([]openstates.Bill, error)

type Bot struct {
	session *discordgo.Session
	cfg     config.Config
	limiter *components.RateLimiter
	fetch   BillFetcher
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(cfg config.Config) (*Bot, error) {
	client := openstates.NewClient(cfg.OpenStatesKey)
	return NewWithFetcher(cfg, client.RecentBills)
}

func NewWithFetcher(cfg config.Config, fetch BillFetcher) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		session: dg,
		cfg:     cfg,
		limiter: components.NewRateLimiter(rateLimitWindow),
		fetch:   fetch,
		ctx:     ctx,
		cancel:  cancel,
	}

	dg.AddHandler(b.handleReady)
	dg.AddHandler(b.handleInteraction)
	dg.Identify.Intents = discordgo.IntentsGuilds

	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return err
	}
	go b.limiter.StartSweep(b.ctx, rateLimitSweepIvl)
	return nil
}

func (b *Bot) Stop() {
	b.cancel()
	_ = b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Discord bot logged in as %s", event.User.Username)

	if err := registerSlashCommands(s, b.cfg.GuildID); err != nil {
		log.Printf("slash command registration: %v", err)
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case CommandBills:
		b.handleBills(s, i)
	case CommandHelp:
		b.handleHelp(s, i)
	}
}
