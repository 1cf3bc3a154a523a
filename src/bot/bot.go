package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/suggestions/src/bot/components/moderation"
	"github.com/stake-plus/suggestions/src/bot/components/suggest"
	"github.com/stake-plus/suggestions/src/config"
	"github.com/stake-plus/suggestions/src/discord"
	"github.com/stake-plus/suggestions/src/suggestion"
)

// Bot is the Discord surface of the suggestion system. It owns the session
// and dispatches slash command interactions to the component handlers.
type Bot struct {
	config     config.Config
	session    *discordgo.Session
	suggest    *suggest.Handler
	moderation *moderation.Handler
}

func New(cfg config.Config, svc *suggestion.Service, rdb *redis.Client) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions

	b := &Bot{
		config: cfg,
		session: session,
		suggest: suggest.NewHandler(suggest.Config{
			Service:  svc,
			Redis:    rdb,
			Bot:      cfg,
			Cooldown: time.Duration(cfg.CooldownSeconds) * time.Second,
		}),
		moderation: moderation.NewHandler(moderation.Config{
			Service: svc,
			Bot:     cfg,
		}),
	}

	b.initHandlers()
	return b, nil
}

func (b *Bot) initHandlers() {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})

	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		switch i.ApplicationCommandData().Name {
		case discord.CommandSuggest:
			b.suggest.Handle(s, i)
		case discord.CommandStatus:
			b.moderation.HandleStatus(s, i)
		case discord.CommandDelete:
			b.moderation.HandleDelete(s, i)
		}
	})
}

// Name implements core.Module.
func (b *Bot) Name() string { return "bot" }

// Start opens the Discord connection and registers slash commands for
// every configured guild.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	registered := make(map[string]bool)
	for ns, nc := range b.config.Namespaces {
		if nc.GuildID == "" || registered[nc.GuildID] {
			continue
		}
		if err := discord.RegisterSlashCommands(b.session, nc.GuildID); err != nil {
			log.Printf("bot: registering commands for %s guild: %v", ns, err)
		}
		registered[nc.GuildID] = true
	}

	return nil
}

// Stop closes the Discord session.
func (b *Bot) Stop(ctx context.Context) {
	if b.session != nil {
		b.session.Close()
	}
}
