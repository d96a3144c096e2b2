package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Message is one archived channel message
type Message struct {
	UserID      int64
	Sender      string
	Body        string
	Timestamp   time.Time
	Channel     string
	Fingerprint string
}

// RawMessage is a message as produced by the channel stream, before the
// write path decides whether it carries a usable identity
type RawMessage struct {
	SenderID int64
	Sender   string
	Body     string
	Date     time.Time
}

// ChannelHandle identifies a resolved channel on the Telegram side
type ChannelHandle struct {
	ID         int64
	AccessHash int64
	Username   string
	Title      string
}

// ScrapeSummary is the aggregate result of one scrape invocation.
// A cooldown rejection and an empty channel both yield a zero summary.
type ScrapeSummary struct {
	Channel  string
	Messages int
	Elapsed  int
	Pictures int
}

// Fingerprint computes the dedup key for a message. Timestamp is deliberately
// excluded: a repost with identical text collapses onto the first record.
func Fingerprint(userID int64, sender, body, channel string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s:%s:%s", userID, sender, body, channel)))
	return hex.EncodeToString(sum[:])
}
