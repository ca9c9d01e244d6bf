// Package alerts posts operator notifications to a Discord webhook.
package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/coah80/getbot/internal/config"
)

const (
	colorOrange = 0xFFA500
	colorRed    = 0xFF4444
	colorGreen  = 0x2ECC71
)

type Options struct {
	WebhookURL string
	PingUserID string
	// Cooldown is the minimum gap between two alerts of the same category.
	Cooldown time.Duration
	Client   *http.Client
	Logger   *log.Logger
}

// Notifier is disabled when WebhookURL is empty; every method is then a no-op.
type Notifier struct {
	webhookURL string
	pingUserID string
	cooldown   time.Duration
	client     *http.Client
	log        *log.Logger

	mu       sync.Mutex
	lastSent map[string]time.Time
	inFlight sync.WaitGroup
}

func New(opts Options) *Notifier {
	n := &Notifier{
		webhookURL: opts.WebhookURL,
		pingUserID: opts.PingUserID,
		cooldown:   opts.Cooldown,
		client:     opts.Client,
		log:        opts.Logger,
		lastSent:   make(map[string]time.Time),
	}
	if n.client == nil {
		n.client = &http.Client{Timeout: 10 * time.Second}
	}
	if n.log == nil {
		n.log = log.Default()
	}
	n.log = n.log.WithPrefix("alerts")
	return n
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.webhookURL != ""
}

func (n *Notifier) send(category string, cooldown time.Duration, ping bool, color int, title, description string, fields []*discordgo.MessageEmbedField) {
	if !n.Enabled() {
		return
	}

	n.mu.Lock()
	now := time.Now()
	if cooldown > 0 {
		if last, ok := n.lastSent[category]; ok && now.Sub(last) < cooldown {
			n.mu.Unlock()
			return
		}
	}
	n.lastSent[category] = now
	n.mu.Unlock()

	params := discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       title,
			Description: truncate(description, 2048),
			Color:       color,
			Fields:      fields,
			Timestamp:   now.UTC().Format(time.RFC3339),
			Footer:      &discordgo.MessageEmbedFooter{Text: "getbot " + config.Version},
		}},
	}
	if ping && n.pingUserID != "" {
		params.Content = fmt.Sprintf("<@%s>", n.pingUserID)
	}

	body, err := json.Marshal(params)
	if err != nil {
		n.log.Error("marshal alert", "err", err)
		return
	}

	n.inFlight.Add(1)
	go func() {
		defer n.inFlight.Done()
		resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			n.log.Warn("send failed", "category", category, "err", err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			n.log.Warn("webhook rejected alert", "category", category, "status", resp.StatusCode)
		}
	}()
}

// Wait blocks until every alert already handed off has been posted.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.inFlight.Wait()
}

func (n *Notifier) BotStarted(username string) {
	n.send("bot-start", 0, false, colorGreen, "Bot Started",
		fmt.Sprintf("getbot %s logged in as %s", config.Version, username), nil)
}

func (n *Notifier) BotStopping() {
	n.send("bot-stop", 0, false, colorOrange, "Bot Stopping", "getbot is shutting down", nil)
}

// DownloadFailed reports a /get invocation that ended in an error other than
// bad user input. Alerts share a cooldown per failure kind.
func (n *Notifier) DownloadFailed(requestID, sourceURL, kind, detail string) {
	n.send("get-"+kind, n.cooldown, kind != "timeout", colorRed, "Download Failed", detail, []*discordgo.MessageEmbedField{
		{Name: "Request", Value: requestID, Inline: true},
		{Name: "Kind", Value: kind, Inline: true},
		{Name: "URL", Value: truncate(sourceURL, 200)},
	})
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
