package export

import (
	"strings"
	"testing"
	"time"

	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/entities"
)

func TestDocument_WithNicknameHeader(t *testing.T) {
	messages := []entities.Message{
		{
			UserID:    42,
			Sender:    "alice",
			Body:      "hello world",
			Timestamp: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
			Channel:   "news",
		},
		{
			UserID:    42,
			Sender:    "alice",
			Body:      "second message",
			Timestamp: time.Date(2024, 3, 2, 11, 0, 0, 0, time.UTC),
			Channel:   "other",
		},
	}

	doc := Document(42, []string{"alice", "alice2"}, messages)

	if !strings.HasPrefix(doc, "Known nicknames for user_id 42: alice, alice2\n\n") {
		t.Errorf("missing nickname header, got:\n%s", doc)
	}
	if !strings.Contains(doc, "[2024-03-01 10:30:00] (from news) hello world\n\n") {
		t.Errorf("missing first message block, got:\n%s", doc)
	}
	if !strings.Contains(doc, "[2024-03-02 11:00:00] (from other) second message\n\n") {
		t.Errorf("missing second message block, got:\n%s", doc)
	}
}

func TestDocument_NoNicknames(t *testing.T) {
	messages := []entities.Message{
		{Body: "text", Channel: "news", Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	doc := Document(0, nil, messages)

	if strings.Contains(doc, "Known nicknames") {
		t.Errorf("unexpected header without nicknames:\n%s", doc)
	}
	if !strings.HasPrefix(doc, "[2024-01-01 00:00:00] (from news) text") {
		t.Errorf("unexpected document:\n%s", doc)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("alice"); got != "alice.txt" {
		t.Errorf("expected alice.txt, got %q", got)
	}
}
