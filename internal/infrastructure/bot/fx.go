package bot

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/niknikgle/EyeOfSauron-Telegram/config"
)

// Module provides the Telegram bot for fx dependency injection
var Module = fx.Module("bot",
	fx.Provide(provideBot),
	fx.Invoke(registerLifecycle),
)

// provideBot creates the Telegram bot from config
func provideBot(cfg *config.BotConfig, logger zerolog.Logger) (*Bot, error) {
	return NewBot(cfg.Token, logger)
}

// registerLifecycle registers bot lifecycle hooks
func registerLifecycle(lc fx.Lifecycle, bot *Bot) {
	var cancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Long-lived context for the blocking poll loop
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			go func() {
				_ = bot.Start(ctx)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			return bot.Stop()
		},
	})
}
