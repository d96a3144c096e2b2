package main

import (
	"go.uber.org/fx"

	"github.com/niknikgle/EyeOfSauron-Telegram/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
