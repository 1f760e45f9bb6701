package main

import (
	"log"

	"github.com/romchhh/13vplus-site-sub001/internal/app"
	"github.com/romchhh/13vplus-site-sub001/internal/config"
	"github.com/romchhh/13vplus-site-sub001/pgk/logger"
)

func main() {
	lg, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	cfg, err := config.Read()
	if err != nil {
		lg.Fatal(err)
	}

	if err := cfg.Validate(); err != nil {
		lg.Fatal(err)
	}

	if err := app.Run(cfg, lg); err != nil {
		lg.Fatal(err)
	}
}
