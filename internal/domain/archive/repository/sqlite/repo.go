package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/deps"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/entities"
)

// Repository implements deps.MessageRepository using sqlite
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sqlite message repository
func NewRepository(db *gorm.DB) deps.MessageRepository {
	return &Repository{db: db}
}

// SaveMessage inserts a message record. Dedup is enforced by the unique
// fingerprint index: a conflicting insert succeeds silently and changes nothing.
func (r *Repository) SaveMessage(ctx context.Context, msg *entities.Message) error {
	model := &entities.MessageModel{
		UserID:      msg.UserID,
		Sender:      msg.Sender,
		Body:        msg.Body,
		Timestamp:   msg.Timestamp,
		Channel:     msg.Channel,
		Fingerprint: msg.Fingerprint,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save message: %w", result.Error)
	}

	return nil
}

// RecordScrape upserts the cooldown ledger entry for a channel
func (r *Repository) RecordScrape(ctx context.Context, channel string, when time.Time) error {
	model := &entities.ScrapedChannelModel{
		Channel:     channel,
		LastScraped: when,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "channel"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_scraped"}),
		}).
		Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to record scrape: %w", result.Error)
	}

	return nil
}

// LastScrapeTime returns the most recent recorded scrape time for a channel
func (r *Repository) LastScrapeTime(ctx context.Context, channel string) (time.Time, bool, error) {
	var model entities.ScrapedChannelModel
	if err := r.db.WithContext(ctx).
		Where("channel = ?", channel).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to get last scrape time: %w", err)
	}

	return model.LastScraped, true, nil
}

// MessagesBySender returns all messages for a nickname in insertion order
func (r *Repository) MessagesBySender(ctx context.Context, nickname string) ([]entities.Message, error) {
	var models []entities.MessageModel
	if err := r.db.WithContext(ctx).
		Where("sender = ?", nickname).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to get messages by sender: %w", err)
	}

	messages := make([]entities.Message, len(models))
	for i, model := range models {
		messages[i] = *model.ToEntity()
	}

	return messages, nil
}

// NicknamesByUserID returns the distinct sender names recorded for a user id
func (r *Repository) NicknamesByUserID(ctx context.Context, userID int64) ([]string, error) {
	var nicknames []string
	if err := r.db.WithContext(ctx).
		Model(&entities.MessageModel{}).
		Distinct("sender").
		Where("user_id = ?", userID).
		Pluck("sender", &nicknames).Error; err != nil {
		return nil, fmt.Errorf("failed to get nicknames by user id: %w", err)
	}

	return nicknames, nil
}
