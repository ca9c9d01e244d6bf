package bot

import (
	"bytes"
	"context"

	"github.com/bwmarrin/discordgo"
)

type Attachment struct {
	FileName string
	Body     []byte
}

// Reply replaces the deferred response. File is nil except on success.
type Reply struct {
	Embed *discordgo.MessageEmbed
	File  *Attachment
}

// Interaction is the slice of a slash-command invocation the /get pipeline
// needs.
type Interaction interface {
	DeferReply(ctx context.Context) error
	EditReply(ctx context.Context, r *Reply) error
	URL() string
	UserTag() string
}

type discordInteraction struct {
	s *discordgo.Session
	i *discordgo.InteractionCreate
}

func newDiscordInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) *discordInteraction {
	return &discordInteraction{s: s, i: i}
}

func (d *discordInteraction) DeferReply(ctx context.Context) error {
	return d.s.InteractionRespond(d.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
}

func (d *discordInteraction) EditReply(ctx context.Context, r *Reply) error {
	content := ""
	edit := &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &[]*discordgo.MessageEmbed{r.Embed},
	}
	if r.File != nil {
		edit.Files = []*discordgo.File{{
			Name:   r.File.FileName,
			Reader: bytes.NewReader(r.File.Body),
		}}
	}
	_, err := d.s.InteractionResponseEdit(d.i.Interaction, edit, discordgo.WithContext(ctx))
	return err
}

func (d *discordInteraction) URL() string {
	for _, opt := range d.i.ApplicationCommandData().Options {
		if opt.Name == "url" {
			return opt.StringValue()
		}
	}
	return ""
}

func (d *discordInteraction) UserTag() string {
	if d.i.Member != nil && d.i.Member.User != nil {
		return d.i.Member.User.String()
	}
	if d.i.User != nil {
		return d.i.User.String()
	}
	return "desconocido"
}
