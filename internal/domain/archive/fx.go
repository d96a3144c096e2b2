// Package archive contains the archive domain module
package archive

import (
	"go.uber.org/fx"

	telegramDelivery "github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/delivery/telegram"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/repository/sqlite"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/usecase/business"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/infrastructure/bot"
)

// Module provides archive domain components for fx dependency injection
var Module = fx.Module("archive",
	// Repository
	fx.Provide(sqlite.NewRepository),

	// UseCase
	fx.Provide(business.NewUseCase),

	// Delivery
	fx.Provide(telegramDelivery.NewHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	fx.Invoke(registerRoutes),
)

// registerRoutes registers command routes on the bot
func registerRoutes(router *telegramDelivery.Router, b *bot.Bot) {
	router.RegisterRoutes(b.Raw())
}
