package telegram

import (
	"testing"
	"time"

	"github.com/gotd/td/tg"
)

func TestToRawMessage_ResolvesSenderFromUserIndex(t *testing.T) {
	users := map[int64]*tg.User{
		42: {ID: 42, Username: "alice"},
	}

	msg := &tg.Message{
		ID:      7,
		Message: "hello",
		Date:    1700000000,
	}
	msg.FromID = &tg.PeerUser{UserID: 42}
	msg.Flags.Set(8) // from_id present

	raw := toRawMessage(msg, users)

	if raw.SenderID != 42 || raw.Sender != "alice" {
		t.Errorf("expected sender alice(42), got %q(%d)", raw.Sender, raw.SenderID)
	}
	if raw.Body != "hello" {
		t.Errorf("expected body hello, got %q", raw.Body)
	}
	if !raw.Date.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("unexpected date %v", raw.Date)
	}
}

func TestToRawMessage_UnknownSenderYieldsNoIdentity(t *testing.T) {
	msg := &tg.Message{ID: 7, Message: "channel post", Date: 1700000000}

	raw := toRawMessage(msg, map[int64]*tg.User{})

	if raw.SenderID != 0 || raw.Sender != "" {
		t.Errorf("expected no identity, got %q(%d)", raw.Sender, raw.SenderID)
	}
	if raw.Body != "channel post" {
		t.Errorf("body must survive, got %q", raw.Body)
	}
}

func TestToRawMessage_ServiceMessage(t *testing.T) {
	raw := toRawMessage(&tg.MessageService{ID: 3}, nil)

	if raw.Body != "" || raw.SenderID != 0 {
		t.Errorf("service message must yield an empty raw message, got %+v", raw)
	}
}

func TestSplitHistory(t *testing.T) {
	channelMsgs := &tg.MessagesChannelMessages{
		Count:    120,
		Messages: []tg.MessageClass{&tg.Message{ID: 1}},
		Users:    []tg.UserClass{&tg.User{ID: 42}},
	}

	messages, users, count := splitHistory(channelMsgs)
	if len(messages) != 1 || len(users) != 1 || count != 120 {
		t.Errorf("unexpected split: %d messages, %d users, count %d", len(messages), len(users), count)
	}

	messages, users, count = splitHistory(&tg.MessagesMessagesNotModified{})
	if messages != nil || users != nil || count != 0 {
		t.Error("not-modified response must split to nothing")
	}
}

func TestIndexUsers_SkipsEmptyUsers(t *testing.T) {
	index := indexUsers([]tg.UserClass{
		&tg.User{ID: 1, Username: "alice"},
		&tg.UserEmpty{ID: 2},
	})

	if len(index) != 1 {
		t.Fatalf("expected 1 indexed user, got %d", len(index))
	}
	if index[1].Username != "alice" {
		t.Errorf("unexpected user %+v", index[1])
	}
}
