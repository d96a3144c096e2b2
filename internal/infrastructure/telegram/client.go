package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/deps"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/entities"
	archiveerrors "github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/errors"
)

// historyBatchSize is the page size for channel history requests
const historyBatchSize = 100

// Reader implements deps.ChannelReader using the gotd/td MTProto client
type Reader struct {
	client *telegram.Client

	apiID   int
	apiHash string

	sessionStorage *FileSessionStorage

	connected  bool
	mu         sync.RWMutex
	cancelFunc context.CancelFunc
	runDone    chan struct{}

	logger zerolog.Logger

	api *tg.Client

	rateLimiter *rate.Limiter
}

// ReaderConfig holds configuration for Reader
type ReaderConfig struct {
	APIID      int
	APIHash    string
	Phone      string
	SessionDir string
	Logger     zerolog.Logger
}

// NewReader creates a new MTProto channel reader
func NewReader(cfg ReaderConfig) (*Reader, error) {
	if cfg.APIID == 0 {
		return nil, fmt.Errorf("APIID is required")
	}
	if cfg.APIHash == "" {
		return nil, fmt.Errorf("APIHash is required")
	}
	if cfg.Phone == "" {
		return nil, fmt.Errorf("Phone is required")
	}
	if cfg.SessionDir == "" {
		cfg.SessionDir = "./sessions"
	}

	sessionStorage, err := NewFileSessionStorage(cfg.SessionDir, cfg.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to create session storage: %w", err)
	}

	logger := cfg.Logger.With().Str("component", "mtproto_reader").Logger()

	if !sessionStorage.SessionExists() {
		logger.Warn().Msg("No session file found, connect will fail until one is provisioned")
	}

	return &Reader{
		apiID:          cfg.APIID,
		apiHash:        cfg.APIHash,
		sessionStorage: sessionStorage,
		logger:         logger,
		rateLimiter:    rate.NewLimiter(rate.Every(time.Second), 10),
	}, nil
}

// Connect connects to Telegram using the pre-provisioned session.
// Idempotent: an already connected reader returns immediately.
func (c *Reader) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		c.logger.Debug().Msg("already connected")
		return nil
	}
	// Keep the lock to prevent concurrent connection attempts
	defer c.mu.Unlock()

	c.logger.Info().Msg("connecting to Telegram")

	c.client = telegram.NewClient(c.apiID, c.apiHash, telegram.Options{
		SessionStorage: c.sessionStorage,
	})

	clientCtx, cancel := context.WithCancel(context.Background())
	c.cancelFunc = cancel

	readyChan := make(chan struct{})
	errChan := make(chan error, 1)
	c.runDone = make(chan struct{})

	go func() {
		defer close(c.runDone)
		err := c.client.Run(clientCtx, func(ctx context.Context) error {
			c.api = c.client.API()

			status, err := c.client.Auth().Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to check auth status: %w", err)
			}

			// Credential acquisition is out of scope: the session file is
			// provisioned externally and must already be authorized.
			if !status.Authorized {
				return archiveerrors.ErrSessionNotFound
			}

			c.logger.Info().Msg("session restored from storage")

			// Connect still holds the mutex while we run, so the flag is
			// written under its protection
			c.connected = true

			close(readyChan)

			// Keep connection alive
			<-ctx.Done()
			return ctx.Err()
		})
		select {
		case errChan <- err:
		default:
		}
	}()

	select {
	case <-readyChan:
		return nil
	case err := <-errChan:
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

// Disconnect shuts the client down and waits for the run loop to finish
func (c *Reader) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		c.logger.Debug().Msg("already disconnected")
		return nil
	}
	cancelFunc := c.cancelFunc
	runDone := c.runDone
	c.mu.Unlock()

	c.logger.Info().Msg("disconnecting from Telegram")

	if cancelFunc != nil {
		cancelFunc()
		if runDone != nil {
			select {
			case <-runDone:
			case <-ctx.Done():
				c.logger.Warn().Msg("disconnect timeout reached while waiting for client shutdown")
			}
		}
	}

	c.mu.Lock()
	c.client = nil
	c.api = nil
	c.connected = false
	c.cancelFunc = nil
	c.runDone = nil
	c.mu.Unlock()

	c.logger.Info().Msg("disconnected from Telegram")
	return nil
}

// IsConnected checks if the reader is connected to Telegram
func (c *Reader) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Reader) apiClient() (*tg.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected || c.api == nil {
		return nil, archiveerrors.ErrNotConnected
	}
	return c.api, nil
}

// ResolveChannel resolves a channel username to a handle. A peer that does
// not exist, is inaccessible or is not a channel resolves to ErrChannelNotFound.
func (c *Reader) ResolveChannel(ctx context.Context, username string) (entities.ChannelHandle, error) {
	api, err := c.apiClient()
	if err != nil {
		return entities.ChannelHandle{}, err
	}

	name := strings.TrimPrefix(username, "@")
	if name == "" {
		return entities.ChannelHandle{}, archiveerrors.ErrInvalidChannel
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return entities.ChannelHandle{}, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	resolved, err := api.ContactsResolveUsername(ctx, name)
	if err != nil {
		c.logger.Warn().Err(err).Str("channel", username).Msg("failed to resolve channel")
		return entities.ChannelHandle{}, archiveerrors.ErrChannelNotFound
	}

	for _, chat := range resolved.Chats {
		if channel, ok := chat.(*tg.Channel); ok {
			return entities.ChannelHandle{
				ID:         channel.ID,
				AccessHash: channel.AccessHash,
				Username:   name,
				Title:      channel.Title,
			}, nil
		}
	}

	return entities.ChannelHandle{}, archiveerrors.ErrChannelNotFound
}

// JoinChannel joins a channel. Idempotent if already a member.
func (c *Reader) JoinChannel(ctx context.Context, ch entities.ChannelHandle) error {
	api, err := c.apiClient()
	if err != nil {
		return err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	c.logger.Info().Str("channel", ch.Username).Msg("joining channel")

	_, err = api.ChannelsJoinChannel(ctx, &tg.InputChannel{
		ChannelID:  ch.ID,
		AccessHash: ch.AccessHash,
	})
	if err != nil {
		return fmt.Errorf("failed to join channel: %w", err)
	}

	return nil
}

// CountMessages returns the channel's total message count via a single
// history probe. Diagnostic only; the stream does not depend on it.
func (c *Reader) CountMessages(ctx context.Context, ch entities.ChannelHandle) (int, error) {
	api, err := c.apiClient()
	if err != nil {
		return 0, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	result, err := api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer:  &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash},
		Limit: 1,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get history: %w", err)
	}

	messages, _, count := splitHistory(result)
	if count > 0 {
		return count, nil
	}
	return len(messages), nil
}

// ForEachMessage streams the channel history newest-first, invoking fn once
// per message. Sender resolution failures never abort the stream: such
// messages are yielded without identity. limit <= 0 streams everything.
func (c *Reader) ForEachMessage(ctx context.Context, ch entities.ChannelHandle, limit int, fn func(entities.RawMessage) error) error {
	api, err := c.apiClient()
	if err != nil {
		return err
	}

	peer := &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}
	offsetID := 0
	yielded := 0

	for {
		batch := historyBatchSize
		if limit > 0 && limit-yielded < batch {
			batch = limit - yielded
		}
		if batch <= 0 {
			return nil
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait cancelled: %w", err)
		}

		result, err := api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
			Peer:     peer,
			OffsetID: offsetID,
			Limit:    batch,
		})
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		messages, users, _ := splitHistory(result)
		if len(messages) == 0 {
			return nil
		}

		userIndex := indexUsers(users)

		for _, m := range messages {
			offsetID = m.GetID()

			if err := fn(toRawMessage(m, userIndex)); err != nil {
				return err
			}

			yielded++
			if limit > 0 && yielded >= limit {
				return nil
			}
		}

		if len(messages) < batch {
			return nil
		}
	}
}

// splitHistory extracts the message and user lists from a history response
func splitHistory(result tg.MessagesMessagesClass) ([]tg.MessageClass, []tg.UserClass, int) {
	switch messages := result.(type) {
	case *tg.MessagesChannelMessages:
		return messages.Messages, messages.Users, messages.Count
	case *tg.MessagesMessagesSlice:
		return messages.Messages, messages.Users, messages.Count
	case *tg.MessagesMessages:
		return messages.Messages, messages.Users, len(messages.Messages)
	default:
		return nil, nil, 0
	}
}

// indexUsers builds a user id index from a history response's user list
func indexUsers(users []tg.UserClass) map[int64]*tg.User {
	index := make(map[int64]*tg.User, len(users))
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			index[user.ID] = user
		}
	}
	return index
}

// toRawMessage converts one history entry to a RawMessage. Service messages
// and posts whose sender is not a resolvable user produce a message without
// identity; the write path decides what to do with it.
func toRawMessage(m tg.MessageClass, users map[int64]*tg.User) entities.RawMessage {
	msg, ok := m.(*tg.Message)
	if !ok {
		return entities.RawMessage{}
	}

	raw := entities.RawMessage{
		Body: msg.Message,
		Date: time.Unix(int64(msg.Date), 0),
	}

	if from, ok := msg.GetFromID(); ok {
		if peer, ok := from.(*tg.PeerUser); ok {
			if user, ok := users[peer.UserID]; ok {
				raw.SenderID = user.ID
				raw.Sender = user.Username
			}
		}
	}

	return raw
}

// Ensure Reader implements deps.ChannelReader interface
var _ deps.ChannelReader = (*Reader)(nil)
