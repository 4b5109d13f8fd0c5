package main

import (
	"log"

	fyneapp "fyne.io/fyne/v2/app"

	"tremors-music/internal/app"
	"tremors-music/internal/config"
)

func main() {
	cfg := config.Default()

	fyneApp := fyneapp.NewWithID(cfg.AppID)

	application, err := app.NewApplication(fyneApp, cfg, app.Options{})
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}
}
