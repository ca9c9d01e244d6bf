package bot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/coah80/getbot/internal/fetcher"
	"github.com/coah80/getbot/internal/media"
	"github.com/coah80/getbot/internal/metrics"
)

type Fetcher interface {
	DownloadURL(sourceURL string) string
	Fetch(ctx context.Context, endpoint string) (*fetcher.Result, error)
}

type Alerter interface {
	DownloadFailed(requestID, sourceURL, kind, detail string)
}

type DownloadRequest struct {
	ID          string
	SourceURL   string
	InvokerTag  string
	Interaction Interaction
}

type GetterOptions struct {
	Metrics *metrics.Metrics
	Alerts  Alerter
	Logger  *log.Logger
	Now     func() time.Time
}

// Getter runs the /get pipeline. It holds no per-invocation state, so one
// Getter serves every interaction concurrently.
type Getter struct {
	fetch   Fetcher
	metrics *metrics.Metrics
	alerts  Alerter
	log     *log.Logger
	now     func() time.Time
}

func NewGetter(f Fetcher, opts GetterOptions) *Getter {
	g := &Getter{
		fetch:   f,
		metrics: opts.Metrics,
		alerts:  opts.Alerts,
		log:     opts.Logger,
		now:     opts.Now,
	}
	if g.log == nil {
		g.log = log.Default()
	}
	g.log = g.log.WithPrefix("get")
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

type invocation struct {
	req  DownloadRequest
	log  *log.Logger
	done bool
}

func (g *Getter) Run(ctx context.Context, ix Interaction) {
	req := DownloadRequest{
		ID:          uuid.NewString(),
		SourceURL:   strings.TrimSpace(ix.URL()),
		InvokerTag:  ix.UserTag(),
		Interaction: ix,
	}
	inv := &invocation{
		req: req,
		log: g.log.With("id", req.ID, "user", req.InvokerTag),
	}

	if err := ix.DeferReply(ctx); err != nil {
		inv.log.Error("failed to defer reply", "err", err)
		return
	}

	defer g.metrics.Begin()()
	outcome := g.process(ctx, inv)
	g.metrics.Outcome(outcome)
	inv.log.Info("finished", "outcome", outcome, "url", req.SourceURL)
}

func (g *Getter) process(ctx context.Context, inv *invocation) (outcome string) {
	defer func() {
		if r := recover(); r != nil {
			inv.log.Error("panic in /get", "panic", r)
			if !inv.done {
				outcome = g.fail(ctx, inv, fmt.Errorf("%v", r))
			} else {
				outcome = KindUnknown
			}
		}
	}()

	req := inv.req
	if err := ValidateURL(req.SourceURL); err != nil {
		return g.fail(ctx, inv, err)
	}

	if err := req.Interaction.EditReply(ctx, &Reply{Embed: waitingEmbed(g.now())}); err != nil {
		inv.log.Warn("failed to show waiting embed", "err", err)
	}

	endpoint := g.fetch.DownloadURL(req.SourceURL)
	inv.log.Info("requesting video", "endpoint", endpoint)

	start := time.Now()
	res, err := g.fetch.Fetch(ctx, endpoint)
	g.metrics.FetchTook(time.Since(start))
	if err != nil {
		return g.fail(ctx, inv, err)
	}

	inv.log.Info("download API responded",
		"status", res.Status,
		"content_type", res.MediaType,
		"content_length", res.ContentLength,
	)
	if res.Status != http.StatusOK {
		return g.fail(ctx, inv, &StatusError{Code: res.Status, Text: res.StatusText})
	}

	g.metrics.Payload(len(res.Body))
	ext := media.Classify(res.MediaType)
	verdict := media.Check(res.Body)
	inv.log.Info("video downloaded", "size", media.FormatMiB(verdict.SizeMiB), "ext", ext)

	if !verdict.OK {
		g.deliver(ctx, inv, &Reply{Embed: oversizeEmbed(verdict.SizeMiB, req.SourceURL, req.InvokerTag, g.now())})
		return metrics.OutcomeOversize
	}

	if sniffed := media.Sniff(res.Body); !media.LooksLikeVideo(sniffed) {
		inv.log.Warn("payload does not look like a video", "sniffed", sniffed, "content_type", res.MediaType)
	}

	attachment := &Attachment{
		FileName: media.FileName(g.now(), ext),
		Body:     res.Body,
	}
	reply := &Reply{
		Embed: successEmbed(verdict.SizeMiB, ext, req.SourceURL, req.InvokerTag, g.now()),
		File:  attachment,
	}
	if err := g.deliver(ctx, inv, reply); err != nil {
		// The upload never landed, so the waiting embed is still showing.
		inv.done = false
		return g.fail(ctx, inv, fmt.Errorf("uploading to Discord: %w", err))
	}
	return metrics.OutcomeSuccess
}

func (g *Getter) fail(ctx context.Context, inv *invocation, err error) string {
	kind := Kind(err)
	report := Classify(err, inv.req.SourceURL)
	inv.log.Error("/get failed", "kind", kind, "err", err, "url", inv.req.SourceURL)

	g.deliver(ctx, inv, &Reply{Embed: failureEmbed(report, g.now())})

	if g.alerts != nil && kind != KindInvalidURL {
		g.alerts.DownloadFailed(inv.req.ID, inv.req.SourceURL, kind, report.Title+": "+report.Detail)
	}
	return kind
}

// deliver sends the terminal edit. It is a no-op once a terminal edit has gone
// out.
func (g *Getter) deliver(ctx context.Context, inv *invocation, r *Reply) error {
	if inv.done {
		return nil
	}
	inv.done = true
	if err := inv.req.Interaction.EditReply(ctx, r); err != nil {
		inv.log.Error("failed to edit reply", "err", err)
		return err
	}
	return nil
}
