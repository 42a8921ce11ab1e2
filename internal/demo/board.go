package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vango-dev/statectx/internal/errors"
	"github.com/vango-dev/statectx/pkg/statectx"
	"github.com/vango-dev/statectx/pkg/telemetry"
)

// State keys.
const (
	KeyCount   = "count"
	KeyQuote   = "quote"
	KeyLoading = "loading"
	KeyError   = "error"
)

// Snapshot is the board's published value.
type Snapshot = statectx.Snapshot[statectx.State, statectx.Actions]

// BoardConfig configures a Board.
type BoardConfig struct {
	// QuoteURL is fetched by the fetch action. Empty disables fetching.
	QuoteURL string

	// FetchTimeout bounds one fetch. Default: 3s.
	FetchTimeout time.Duration

	// Client performs fetches. Default: http.DefaultClient.
	Client *http.Client

	// Observer receives provider events.
	Observer statectx.Observer

	// Tracer wraps fetches in spans. Default: telemetry.Tracing().
	Tracer *telemetry.Tracer

	Logger *slog.Logger
}

// Board is the quote board: its context, actions, and view.
type Board struct {
	ctx    *statectx.Context[statectx.State, statectx.Actions]
	config BoardConfig
	logger *slog.Logger

	base   context.Context
	latest atomic.Pointer[Snapshot]
}

// NewBoard creates a board. base bounds outbound fetches; cancelling it
// aborts those in flight.
func NewBoard(base context.Context, config BoardConfig) *Board {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 3 * time.Second
	}
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	if config.Tracer == nil {
		config.Tracer = telemetry.Tracing()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	b := &Board{config: config, logger: config.Logger, base: base}
	opts := []statectx.Option{statectx.WithLogger(config.Logger)}
	if config.Observer != nil {
		opts = append(opts, statectx.WithObserver(config.Observer))
	}
	b.ctx = statectx.Create(statectx.Schema[statectx.State, statectx.Actions]{
		Name:    "board",
		Initial: statectx.State{KeyCount: 0, KeyQuote: "", KeyLoading: false, KeyError: ""},
		Actions: b.actions,
	}, opts...)
	return b
}

// Context returns the board's context.
func (b *Board) Context() *statectx.Context[statectx.State, statectx.Actions] {
	return b.ctx
}

// Snapshot returns the snapshot last rendered by the mounted board, or the
// default before the first render.
func (b *Board) Snapshot() *Snapshot {
	if s := b.latest.Load(); s != nil {
		return s
	}
	return b.ctx.Default()
}

func (b *Board) actions(s statectx.State, set statectx.Setter[statectx.State]) statectx.Actions {
	count := statectx.Value[int](s, KeyCount)
	return statectx.Actions{
		"increment": func() { set.Update(statectx.Merge(statectx.State{KeyCount: count + 1})) },
		"decrement": func() { set.Update(statectx.Merge(statectx.State{KeyCount: count - 1})) },
		"reset":     func() { set.Set(statectx.State{KeyCount: 0, KeyQuote: "", KeyLoading: false, KeyError: ""}) },
		"fetch":     func() { b.fetch(set) },
	}
}

// fetch loads a quote off the render loop and commits the outcome.
func (b *Board) fetch(set statectx.Setter[statectx.State]) {
	if b.config.QuoteURL == "" {
		err := errors.New(errors.CodeFetchFailed).WithDetail("no quote URL configured")
		set.Update(statectx.Merge(statectx.State{KeyError: err.Error()}))
		return
	}
	set.Update(statectx.Merge(statectx.State{KeyLoading: true, KeyError: ""}))

	go func() {
		ctx, cancel := context.WithTimeout(b.base, b.config.FetchTimeout)
		defer cancel()

		ctx, span := b.config.Tracer.StartAction(ctx, "board", "fetch")
		quote, err := b.fetchQuote(ctx)
		telemetry.EndAction(span, err)

		if err != nil {
			b.logger.Warn("quote fetch failed", "error", err)
			set.Update(statectx.Merge(statectx.State{KeyLoading: false, KeyError: err.Error()}))
			return
		}
		set.Update(statectx.Merge(statectx.State{KeyLoading: false, KeyQuote: quote}))
	}()
}

type quoteResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (b *Board) fetchQuote(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.config.QuoteURL, nil)
	if err != nil {
		return "", errors.New(errors.CodeFetchFailed).Wrap(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.config.Client.Do(req)
	if err != nil {
		return "", errors.New(errors.CodeFetchFailed).WithDetail("GET %s", b.config.QuoteURL).Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", errors.New(errors.CodeFetchFailed).
			WithDetail("GET %s: status %d", b.config.QuoteURL, resp.StatusCode)
	}

	var q quoteResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&q); err != nil {
		return "", errors.New(errors.CodeFetchFailed).WithDetail("decode quote").Wrap(err)
	}
	if q.Author == "" {
		return q.Content, nil
	}
	return fmt.Sprintf("%s (%s)", q.Content, q.Author), nil
}
