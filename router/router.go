package router

import (
	"net/http"

	metaHandler "docmeta/internal/metadata"
	"docmeta/internal/metadata/repository"
	"docmeta/internal/metadata/service"
	"docmeta/middleware"
	"docmeta/socket"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(repo *repository.MetadataRepository, hub *socket.Hub) http.Handler {
	mux := http.NewServeMux()

	// WebSocket: live open-event subscriptions
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ := middleware.ActorFromContext(r.Context())
		socket.ServeWs(hub, w, r, actor.ID)
	})
	mux.Handle("/ws", middleware.AuthMiddleware(wsHandler))

	// REST API
	metaService := service.NewMetadataService(repo, hub)
	handler := metaHandler.NewMetadataHandler(metaService)
	auth := middleware.AuthMiddleware

	mux.Handle("/document-metadata/last-opened/{uid}/{documentId}", auth(http.HandlerFunc(handler.LastOpened)))

	mux.Handle("/metrics", promhttp.Handler())

	return middleware.CORSMiddleware(middleware.RequestID(mux))
}
