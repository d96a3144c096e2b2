// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/niknikgle/EyeOfSauron-Telegram/internal/infrastructure/bot"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/infrastructure/database"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/infrastructure/logger"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/infrastructure/metrics"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	database.Module,
	metrics.Module,
	telegram.Module,
	bot.Module,
)
