// Package export builds the transient text document delivered for nickname
// searches. The document is written, sent and discarded; its layout is not a
// stable schema.
package export

import (
	"fmt"
	"strings"

	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/entities"
)

// Document renders a nickname's message list as a UTF-8 text document: an
// optional header listing the user's known nicknames, then one blank-line
// separated block per message.
func Document(userID int64, nicknames []string, messages []entities.Message) string {
	var b strings.Builder

	if len(nicknames) > 0 {
		fmt.Fprintf(&b, "Known nicknames for user_id %d: %s\n\n", userID, strings.Join(nicknames, ", "))
	}

	for _, msg := range messages {
		fmt.Fprintf(&b, "[%s] (from %s) %s\n\n", msg.Timestamp.Format("2006-01-02 15:04:05"), msg.Channel, msg.Body)
	}

	return b.String()
}

// Filename returns the document name for a nickname
func Filename(nickname string) string {
	return nickname + ".txt"
}
