// Package telegram adapts the Telegram Bot API to the messaging service
// interface, long polling through go-telegram-bot-api.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitflow/fitflow/internal/models"
)

const (
	defaultPollTimeout = 30 * time.Second
	updatesBufferSize  = 64
)

// Opts holds configuration options for the Telegram client.
type Opts struct {
	Token       string
	BaseURL     string
	HTTPClient  *http.Client
	PollTimeout time.Duration
}

// Option defines a configuration option for NewClient.
type Option func(*Opts)

// WithToken sets the bot token explicitly.
func WithToken(token string) Option {
	return func(o *Opts) { o.Token = token }
}

// WithBaseURL overrides the Bot API base URL. Used in tests.
func WithBaseURL(base string) Option {
	return func(o *Opts) { o.BaseURL = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Opts) { o.HTTPClient = hc }
}

// WithPollTimeout sets the long-poll timeout for getUpdates.
func WithPollTimeout(d time.Duration) Option {
	return func(o *Opts) { o.PollTimeout = d }
}

// Client bridges a Bot API connection to messaging.Service. The SDK owns
// the getUpdates loop and offset bookkeeping; this type only filters the
// update stream down to text messages.
type Client struct {
	bot         *tgbotapi.BotAPI
	pollTimeout time.Duration
	updates     chan models.InboundMessage

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewClient connects to the Telegram Bot API. The bot token falls back to
// the BOT_TOKEN environment variable when not set explicitly.
func NewClient(opts ...Option) (*Client, error) {
	o := Opts{
		HTTPClient:  &http.Client{Timeout: defaultPollTimeout + 10*time.Second},
		PollTimeout: defaultPollTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Token == "" {
		o.Token = os.Getenv("BOT_TOKEN")
	}
	if o.Token == "" {
		return nil, fmt.Errorf("telegram bot token not configured")
	}

	endpoint := tgbotapi.APIEndpoint
	if o.BaseURL != "" {
		endpoint = strings.TrimSuffix(o.BaseURL, "/") + "/bot%s/%s"
	}
	bot, err := tgbotapi.NewBotAPIWithClient(o.Token, endpoint, o.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	bot.Buffer = updatesBufferSize

	slog.Debug("Telegram client created", "botUsername", bot.Self.UserName)
	return &Client{
		bot:         bot,
		pollTimeout: o.PollTimeout,
		updates:     make(chan models.InboundMessage, updatesBufferSize),
	}, nil
}

// Start begins consuming the long-poll update stream.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return fmt.Errorf("telegram client already started")
	}
	c.started = true

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(c.pollTimeout / time.Second)
	ch := c.bot.GetUpdatesChan(cfg)

	forwardCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	go c.forward(forwardCtx, ch)
	slog.Info("Telegram client started", "botUsername", c.bot.Self.UserName)
	return nil
}

// forward narrows Bot API updates to inbound text messages. Updates
// without message text (joins, media, edits) are skipped.
func (c *Client) forward(ctx context.Context, ch tgbotapi.UpdatesChannel) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-ch:
			if !ok {
				return
			}
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			msg := models.InboundMessage{
				UserID: u.Message.Chat.ID,
				Text:   u.Message.Text,
				Time:   int64(u.Message.Date),
			}
			select {
			case <-ctx.Done():
				return
			case c.updates <- msg:
			}
		}
	}
}

// Stop ends the update stream and closes the updates channel. Safe to
// call at most once after Start; a Stop without Start is a no-op.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.stopped {
		return nil
	}
	c.stopped = true
	c.cancel()
	c.bot.StopReceivingUpdates()
	c.wg.Wait()
	close(c.updates)
	slog.Info("Telegram client stopped")
	return nil
}

// Updates returns the channel of inbound user turns.
func (c *Client) Updates() <-chan models.InboundMessage {
	return c.updates
}

// SendMessage delivers a reply to a chat.
func (c *Client) SendMessage(ctx context.Context, userID int64, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.bot.Send(tgbotapi.NewMessage(userID, body)); err != nil {
		slog.Error("Telegram sendMessage failed", "error", err, "userID", userID)
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	slog.Debug("Telegram sendMessage succeeded", "userID", userID)
	return nil
}
