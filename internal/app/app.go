// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/niknikgle/EyeOfSauron-Telegram/config"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, database, metrics, telegram, bot)
		infrastructure.Module,

		// Domain (archive business logic)
		archive.Module,
	)
}
