package main

import (
	"fxconvert/internal/app"
	"os"

	"github.com/sirupsen/logrus"
)

// @title fxconvert API
// @version 1.0
// @description Currency conversion with remote providers and offline fallback rates.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped")
		os.Exit(1)
	}
}
