package business

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/niknikgle/EyeOfSauron-Telegram/config"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/deps"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/entities"
	archiveerrors "github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/errors"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/infrastructure/metrics"
)

// UseCase implements the ingestion pipeline and the archive lookups.
//
// A single mutex serializes every scrape and lookup: a reader never observes
// a half-completed scrape's writes, and two scrape commands issued
// back-to-back never interleave. Only one scrape is in flight at a time,
// regardless of channel.
type UseCase struct {
	repo    deps.MessageRepository
	reader  deps.ChannelReader
	metrics *metrics.Metrics
	logger  zerolog.Logger

	cooldown time.Duration
	limit    int

	mu sync.Mutex
}

// SearchResult holds the outcome of a nickname lookup
type SearchResult struct {
	Messages  []entities.Message
	UserID    int64
	Nicknames []string
}

// NewUseCase creates the archive use case
func NewUseCase(
	repo deps.MessageRepository,
	reader deps.ChannelReader,
	scrapeCfg *config.ScrapeConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		repo:     repo,
		reader:   reader,
		metrics:  m,
		logger:   logger.With().Str("component", "archive_usecase").Logger(),
		cooldown: scrapeCfg.Cooldown,
		limit:    scrapeCfg.Limit,
	}
}

// Scrape ingests a channel's messages into the archive.
//
// A cooldown rejection returns a zero summary and no error, which is
// indistinguishable from scraping an empty channel. Transport failures
// mid-stream are propagated; writes already committed and the ledger update
// stay in effect.
func (uc *UseCase) Scrape(ctx context.Context, channel string) (entities.ScrapeSummary, error) {
	if channel == "" {
		return entities.ScrapeSummary{}, archiveerrors.ErrInvalidChannel
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	started := time.Now()
	log := uc.logger.With().Str("channel", channel).Logger()

	allowed, err := uc.mayScrape(ctx, channel)
	if err != nil {
		return entities.ScrapeSummary{}, err
	}
	if !allowed {
		log.Info().Dur("cooldown", uc.cooldown).Msg("Channel is on cooldown, skipping scrape")
		uc.metrics.IncScrapeRejected()
		return entities.ScrapeSummary{Channel: channel}, nil
	}

	if err := uc.reader.Connect(ctx); err != nil {
		uc.metrics.IncScrapeFailed()
		return entities.ScrapeSummary{}, err
	}

	handle, err := uc.reader.ResolveChannel(ctx, channel)
	if err != nil {
		uc.metrics.IncScrapeFailed()
		return entities.ScrapeSummary{}, err
	}

	// Best effort: already being a member is fine, and so is a join that
	// fails for a public channel we can read anyway.
	if err := uc.reader.JoinChannel(ctx, handle); err != nil {
		log.Warn().Err(err).Msg("Failed to join channel, continuing")
	}

	if total, err := uc.reader.CountMessages(ctx, handle); err == nil {
		log.Info().Int("total", total).Msg("Channel message count")
	}

	uc.metrics.IncScrapeStarted()

	// Recorded before the stream is consumed so a crash mid-stream still
	// respects the cooldown on retry.
	if err := uc.repo.RecordScrape(ctx, channel, time.Now().UTC()); err != nil {
		return entities.ScrapeSummary{}, err
	}

	seen := 0
	err = uc.reader.ForEachMessage(ctx, handle, uc.limit, func(raw entities.RawMessage) error {
		seen++
		if err := uc.storeMessage(ctx, raw, channel); err != nil {
			// Per-message failures are never fatal to the run
			log.Debug().Err(err).Msg("Skipping message")
		}
		return nil
	})

	uc.metrics.AddMessagesSeen(seen)

	if err != nil {
		uc.metrics.IncScrapeFailed()
		log.Error().Err(err).Int("seen", seen).Msg("Scrape aborted by transport failure")
		return entities.ScrapeSummary{}, err
	}

	summary := entities.ScrapeSummary{
		Channel:  channel,
		Messages: seen,
		Elapsed:  int(time.Since(started).Round(time.Second).Seconds()),
	}

	log.Info().
		Int("messages", summary.Messages).
		Int("elapsed_seconds", summary.Elapsed).
		Msg("Scrape completed")

	return summary, nil
}

// SearchNickname returns all archived messages for a nickname together with
// the nickname history of the matching user id. A nickname with no messages
// yields an empty result, not an error.
func (uc *UseCase) SearchNickname(ctx context.Context, nickname string) (SearchResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.metrics.IncLookup()

	messages, err := uc.repo.MessagesBySender(ctx, nickname)
	if err != nil {
		return SearchResult{}, err
	}
	if len(messages) == 0 {
		return SearchResult{}, nil
	}

	userID := messages[0].UserID
	nicknames, err := uc.repo.NicknamesByUserID(ctx, userID)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		Messages:  messages,
		UserID:    userID,
		Nicknames: nicknames,
	}, nil
}

// mayScrape reports whether the cooldown interval has passed for a channel
func (uc *UseCase) mayScrape(ctx context.Context, channel string) (bool, error) {
	last, ok, err := uc.repo.LastScrapeTime(ctx, channel)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return time.Since(last) > uc.cooldown, nil
}

// storeMessage runs the dedup write path for one raw message. Messages with
// no text or no resolvable sender identity are skipped without touching the
// store: they carry nothing a later lookup could find.
func (uc *UseCase) storeMessage(ctx context.Context, raw entities.RawMessage, channel string) error {
	if raw.Body == "" || raw.Sender == "" || raw.SenderID == 0 {
		return nil
	}

	msg := &entities.Message{
		UserID:      raw.SenderID,
		Sender:      raw.Sender,
		Body:        raw.Body,
		Timestamp:   raw.Date,
		Channel:     channel,
		Fingerprint: entities.Fingerprint(raw.SenderID, raw.Sender, raw.Body, channel),
	}

	return uc.repo.SaveMessage(ctx, msg)
}
