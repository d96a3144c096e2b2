package telegram

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/niknikgle/EyeOfSauron-Telegram/config"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/deps"
)

// Module provides the MTProto channel reader for fx dependency injection
var Module = fx.Module("telegram",
	fx.Provide(provideReader),
)

// provideReader creates the channel reader and disconnects it on shutdown.
// The connection itself is established lazily by the first scrape.
func provideReader(lc fx.Lifecycle, cfg *config.TelegramConfig, logger zerolog.Logger) (deps.ChannelReader, error) {
	reader, err := NewReader(ReaderConfig{
		APIID:      cfg.APIID,
		APIHash:    cfg.APIHash,
		Phone:      cfg.Phone,
		SessionDir: cfg.SessionDir,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return reader.Disconnect(ctx)
		},
	})

	return reader, nil
}
