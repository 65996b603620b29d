package main

import (
	"log"
	"net/http"
	"time"

	"leaveease/internal/platform/config"
	"leaveease/internal/stubapi"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	store := stubapi.NewStore(time.Now)
	store.Seed()
	server := stubapi.NewServer(store, cfg.AnnualAllowance, time.Now)

	log.Printf("LeaveEase dev server listening on %s", cfg.DevServerAddr)
	if err := http.ListenAndServe(cfg.DevServerAddr, server.Router()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
