package main

import (
	"log"
	"os"

	"github.com/quocluongg/telectric-web-sub001/cmd/storefront/app"
	"github.com/quocluongg/telectric-web-sub001/configs"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	logging.Init(cfg.App.Name, cfg.App.LogFile)

	app, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	log.Printf("storefront (%s) listening on %s", env, cfg.App.HTTPAddr)
	if err := app.Router.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
