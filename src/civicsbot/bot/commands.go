package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/RaffayA04/civics-mvp/src/shared/civicerr"
	"github.com/RaffayA04/civics-mvp/src/shared/openstates"
	"github.com/RaffayA04/civics-mvp/src/shared/usstate"
)

const (
	CommandBills = "bills"
	CommandHelp  = "help"
)

const (
	billWindowDays = 14
	defaultLimit   = 10
	minLimit       = 1
	maxLimit       = 20

	// Discord caps embed field values at 1024 characters.
	maxFieldValueLen = 1024
)

var commandDefinitions = map[string]*discordgo.ApplicationCommand{
	CommandBills: {
		Name:        CommandBills,
		Description: "Show recent state bills by 2-letter code (e.g., WA, TX, NY).",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "state",
				Description: "Two-letter state code (e.g., WA, CA, TX)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "How many bills to show (1-20, default 10)",
			},
		},
	},
	CommandHelp: {
		Name:        CommandHelp,
		Description: "What can I ask this bot?",
	},
}

var defaultCommandOrder = []string{CommandBills, CommandHelp}

func registerSlashCommands(s *discordgo.Session, guildID string) error {
	var failures []string
	for _, name := range defaultCommandOrder {
		definition := commandDefinitions[name]
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, definition); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("slash command registration errors: %s", strings.Join(failures, "; "))
	}
	return nil
}

func (b *Bot) handleBills(s *discordgo.Session, i *discordgo.InteractionCreate) {
	code, limit := parseBillsOptions(i.ApplicationCommandData().Options)

	stateName, limit, reject := b.gateBills(interactionUserID(i), code, limit)
	if reject != "" {
		respondEphemeral(s, i, reject)
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Printf("defer response: %v", err)
		return
	}

	// The lookup must not block interaction dispatch.
	go func() {
		embed, content := b.lookupBills(b.ctx, stateName, limit)
		edit := &discordgo.WebhookEdit{}
		if embed != nil {
			edit.Embeds = &[]*discordgo.MessageEmbed{embed}
		} else {
			edit.Content = &content
		}
		if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
			log.Printf("edit response: %v", err)
		}
	}()
}

// gateBills applies the rate gate, validates the state code, and
// clamps the limit. A non-empty reject message means the request goes
// no further and no network call is made. The rate gate runs first;
// only accepted calls advance a user's window.
func (b *Bot) gateBills(userID, code string, limit int) (stateName string, clamped int, reject string) {
	if !b.limiter.CanUse(userID) {
		wait := b.limiter.TimeUntilNext(userID)
		return "", 0, fmt.Sprintf("Please wait %.0f seconds before using this command again.", wait.Seconds())
	}

	stateName = usstate.Normalize(code)
	if stateName == "" {
		return "", 0, "Please provide a valid 2-letter state code (e.g., **WA**, **CA**, **TX**)."
	}

	return stateName, clampLimit(limit), ""
}

// lookupBills fetches and renders the bill list. Exactly one of the
// return values is set: an embed on success with results, a plain
// message for failures and for the distinct zero-results outcome.
func (b *Bot) lookupBills(ctx context.Context, stateName string, limit int) (*discordgo.MessageEmbed, string) {
	bills, err := b.fetch(ctx, stateName, billWindowDays, limit)
	if err != nil {
		log.Printf("bills lookup failed for %q: %v", stateName, err)
		return nil, fmt.Sprintf("Error fetching bills for **%s**:\n`%s`", stateName, civicerr.UserMessage(err))
	}
	if len(bills) == 0 {
		return nil, fmt.Sprintf("No recent bills found for **%s** in the last %d days.", stateName, billWindowDays)
	}
	return buildBillsEmbed(stateName, bills), ""
}

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "Civics Bot Commands",
		Color: 0x14B8A6,
		Description: "Privacy-first: **state codes only** (no addresses).\n\n" +
			"**/bills <STATE> [limit]** shows recent bills for a state.\n" +
			"Examples: `/bills WA`, `/bills TX limit:5`",
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Printf("help response: %v", err)
	}
}

func parseBillsOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) (state string, limit int) {
	limit = defaultLimit
	for _, opt := range opts {
		switch opt.Name {
		case "state":
			state = opt.StringValue()
		case "limit":
			limit = int(opt.IntValue())
		}
	}
	return state, limit
}

func clampLimit(n int) int {
	if n < minLimit {
		return minLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

func buildBillsEmbed(stateName string, bills []openstates.Bill) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Recent Bills in %s", stateName),
		Description: fmt.Sprintf("Source: OpenStates, showing %d", len(bills)),
		Color:       0x4F46E5,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Try: /bills WA"},
	}

	for _, bill := range bills {
		name, value := formatBillField(bill)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: value,
		})
	}
	return embed
}

func formatBillField(bill openstates.Bill) (name, value string) {
	name = bill.Identifier
	if name == "" {
		name = "Bill"
	}

	var parts []string
	if bill.Title != "" {
		parts = append(parts, bill.Title)
	}
	if bill.Status != "" {
		line := "*Last action:* " + bill.Status
		if bill.LatestActionDate != "" {
			line += fmt.Sprintf(" (%s)", bill.LatestActionDate)
		}
		parts = append(parts, line)
	}
	if bill.Link != "" {
		parts = append(parts, fmt.Sprintf("[OpenStates link](%s)", bill.Link))
	}

	value = strings.Join(parts, "\n")
	if len(value) > maxFieldValueLen {
		value = value[:maxFieldValueLen]
	}
	return name, value
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Printf("ephemeral response: %v", err)
	}
}
