package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

type Config struct {
	Token string
	AppID string
	// InteractionWindow bounds one invocation from defer to final edit.
	InteractionWindow time.Duration
	Logger            *log.Logger
}

type Bot struct {
	session *discordgo.Session
	cfg     Config
	getter  *Getter
	cmdIDs  []string
	log     *log.Logger
}

func New(cfg Config, getter *Getter) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}
	if cfg.InteractionWindow <= 0 {
		cfg.InteractionWindow = 15 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	b := &Bot{
		session: s,
		cfg:     cfg,
		getter:  getter,
		log:     cfg.Logger.WithPrefix("bot"),
	}

	s.AddHandler(b.handleInteraction)
	s.Identify.Intents = discordgo.IntentsGuilds

	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return err
	}

	b.log.Info("logged in", "user", b.session.State.User.Username)

	for _, cmd := range commandDefinitions() {
		created, err := b.session.ApplicationCommandCreate(b.cfg.AppID, "", cmd)
		if err != nil {
			b.log.Error("failed to register command", "command", cmd.Name, "err", err)
			continue
		}
		b.cmdIDs = append(b.cmdIDs, created.ID)
		b.log.Info("registered command", "command", "/"+created.Name)
	}

	return nil
}

// Ready reports whether the gateway session has received READY.
func (b *Bot) Ready() bool {
	return b.session.DataReady
}

// Username is the logged-in bot user, empty before Start.
func (b *Bot) Username() string {
	if b.session.State == nil || b.session.State.User == nil {
		return ""
	}
	return b.session.State.User.String()
}

func (b *Bot) Stop() {
	for _, id := range b.cmdIDs {
		if err := b.session.ApplicationCommandDelete(b.cfg.AppID, "", id); err != nil {
			b.log.Warn("failed to delete command", "id", id, "err", err)
		}
	}
	b.session.Close()
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "get",
			Description: "Descarga un video de Instagram, TikTok u otras plataformas",
			IntegrationTypes: &[]discordgo.ApplicationIntegrationType{
				discordgo.ApplicationIntegrationGuildInstall,
			},
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
				discordgo.InteractionContextBotDM,
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "url",
					Description: "La URL del video que quieres descargar",
					Required:    true,
				},
			},
		},
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "get":
		b.handleGet(s, i)
	}
}

func (b *Bot) handleGet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ix := newDiscordInteraction(s, i)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.InteractionWindow)
		defer cancel()
		b.getter.Run(ctx, ix)
	}()
}
