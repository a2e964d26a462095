package main

import (
	"net/http"
	"os"

	"docmeta/config"
	"docmeta/config/database"
	"docmeta/internal/contenttype"
	"docmeta/internal/metadata/repository"
	"docmeta/pkg/logger"
	"docmeta/pkg/metrics"
	"docmeta/router"
	"docmeta/socket"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Sugar.Fatalf("Failed to load config: %v", err)
	}

	db := database.Connect(cfg.Database)
	defer db.Close()

	types, err := contenttype.Load(cfg.ContentTypes)
	if err != nil {
		logger.Sugar.Fatalf("Failed to load content-type registry: %v", err)
	}

	repo := repository.NewMetadataRepository(db, types)

	hub := socket.NewHub(repo)
	go hub.Run()

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	handler := router.Setup(repo, hub)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Sugar.Infof("Document-metadata service listening on :%s", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
