package entities

import "time"

// MessageModel is a GORM model for the messages table
type MessageModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      int64     `gorm:"not null;index"`
	Sender      string    `gorm:"not null;size:255;index"`
	Body        string    `gorm:"not null"`
	Timestamp   time.Time `gorm:"not null"`
	Channel     string    `gorm:"not null;size:255"`
	Fingerprint string    `gorm:"not null;size:64;uniqueIndex"`
}

func (MessageModel) TableName() string {
	return "messages"
}

// ToEntity converts DB model to domain entity
func (m *MessageModel) ToEntity() *Message {
	return &Message{
		UserID:      m.UserID,
		Sender:      m.Sender,
		Body:        m.Body,
		Timestamp:   m.Timestamp,
		Channel:     m.Channel,
		Fingerprint: m.Fingerprint,
	}
}

// ScrapedChannelModel is a GORM model for the per-channel cooldown ledger
type ScrapedChannelModel struct {
	Channel     string    `gorm:"primaryKey;size:255"`
	LastScraped time.Time `gorm:"not null"`
}

func (ScrapedChannelModel) TableName() string {
	return "scraped_channels"
}
