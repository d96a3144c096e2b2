package errors

import (
	pkgerrors "github.com/niknikgle/EyeOfSauron-Telegram/pkg/errors"
)

var (
	ErrChannelNotFound  = pkgerrors.NewNotFoundError("channel not found")
	ErrInvalidChannel   = pkgerrors.NewValidationError("invalid channel username")
	ErrNotConnected     = pkgerrors.NewServiceUnavailableError("not connected to Telegram")
	ErrSessionNotFound  = pkgerrors.NewServiceUnavailableError("no Telegram session available")
	ErrConnectionFailed = pkgerrors.NewServiceUnavailableError("failed to connect to Telegram")
)
