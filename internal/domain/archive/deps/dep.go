package deps

import (
	"context"
	"time"

	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/entities"
)

// MessageRepository defines the persistent store for archived messages and
// the per-channel cooldown ledger
type MessageRepository interface {
	// SaveMessage inserts a message; a record with the same fingerprint
	// already present is a silent no-op
	SaveMessage(ctx context.Context, msg *entities.Message) error

	// RecordScrape upserts the cooldown ledger entry for a channel
	RecordScrape(ctx context.Context, channel string, when time.Time) error

	// LastScrapeTime returns the most recent recorded scrape time for a
	// channel; ok is false if the channel has never been scraped
	LastScrapeTime(ctx context.Context, channel string) (t time.Time, ok bool, err error)

	// MessagesBySender returns all messages for a nickname in insertion order
	MessagesBySender(ctx context.Context, nickname string) ([]entities.Message, error)

	// NicknamesByUserID returns the distinct sender names ever recorded
	// for a user id
	NicknamesByUserID(ctx context.Context, userID int64) ([]string, error)
}

// ChannelReader defines the external messaging service boundary
type ChannelReader interface {
	// Connect establishes an authenticated session from the pre-provisioned
	// session artifact; idempotent if already connected
	Connect(ctx context.Context) error

	// ResolveChannel resolves a channel username to a handle
	ResolveChannel(ctx context.Context, username string) (entities.ChannelHandle, error)

	// JoinChannel joins the channel; idempotent if already a member
	JoinChannel(ctx context.Context, ch entities.ChannelHandle) error

	// CountMessages returns the channel's total message count
	CountMessages(ctx context.Context, ch entities.ChannelHandle) (int, error)

	// ForEachMessage streams the channel history newest-first, invoking fn
	// once per message. limit <= 0 streams all available messages.
	ForEachMessage(ctx context.Context, ch entities.ChannelHandle, limit int, fn func(entities.RawMessage) error) error
}
