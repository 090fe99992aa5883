package main

import (
	"log"

	"paymux/config"
	"paymux/internal/api"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("config: %s", err)
	}
	api.Run(cfg)
}
