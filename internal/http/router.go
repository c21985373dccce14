package http

import (
	"net/http"

	"family-backend/internal/handlers"
	"family-backend/internal/metrics"
	"family-backend/internal/middleware"

	"github.com/gorilla/mux"
)

// NewRouter wires every handler onto the API surface. Guards: Resolve runs
// on everything, RequireAuth on the API, RequireAdmin on moderation and
// admin endpoints.
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	memberHandler *handlers.FamilyMemberHandler,
	eventHandler *handlers.EventHandler,
	calendarHandler *handlers.CalendarHandler,
	galleryHandler *handlers.GalleryHandler,
	chatHandler *handlers.ChatHandler,
	notificationHandler *handlers.NotificationHandler,
	wishHandler *handlers.WishHandler,
	dashboardHandler *handlers.DashboardHandler,
	monitoringHandler *handlers.MonitoringHandler,
	authMW *middleware.AuthMiddleware,
	activityMW *middleware.ActivityMiddleware,
	m *metrics.Metrics,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.SecurityHeaders)
	r.Use(m.Middleware)
	r.Use(authMW.Resolve)

	r.HandleFunc("/health", monitoringHandler.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// activity tracking covers the whole API, admin routes included;
	// anonymous requests carry no member link and pass through untracked
	api.Use(activityMW.Handler)

	// public auth surface
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// everything else requires an approved account
	authed := api.NewRoute().Subrouter()
	authed.Use(authMW.RequireAuth)

	authed.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	authed.HandleFunc("/members", memberHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/members", memberHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/members/{id:[0-9]+}", memberHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/members/{id:[0-9]+}", memberHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/members/{id:[0-9]+}/relations", memberHandler.Relations).Methods(http.MethodGet)
	authed.HandleFunc("/members/{id:[0-9]+}/avatar", memberHandler.Avatar).Methods(http.MethodPost)

	authed.HandleFunc("/events", eventHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/events", eventHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/events/{id:[0-9]+}", eventHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/events/{id:[0-9]+}", eventHandler.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/calendar", calendarHandler.Feed).Methods(http.MethodGet)
	authed.HandleFunc("/calendar/birthdays", calendarHandler.Birthdays).Methods(http.MethodGet)
	authed.HandleFunc("/calendar/anniversaries", calendarHandler.Anniversaries).Methods(http.MethodGet)

	authed.HandleFunc("/gallery", galleryHandler.ListApproved).Methods(http.MethodGet)
	authed.HandleFunc("/gallery", galleryHandler.Upload).Methods(http.MethodPost)
	authed.HandleFunc("/gallery/{id:[0-9]+}", galleryHandler.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/chat/messages", chatHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/chat/messages", chatHandler.Post).Methods(http.MethodPost)
	authed.HandleFunc("/chat/ws", chatHandler.Websocket).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkRead).Methods(http.MethodPost)
	authed.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods(http.MethodPost)
	authed.HandleFunc("/notifications/{id:[0-9]+}", notificationHandler.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/wishes", wishHandler.Send).Methods(http.MethodPost)
	authed.HandleFunc("/wishes/received", wishHandler.Received).Methods(http.MethodGet)
	authed.HandleFunc("/wishes/sent", wishHandler.Sent).Methods(http.MethodGet)

	authed.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods(http.MethodGet)

	// admin surface
	admin := api.NewRoute().Subrouter()
	admin.Use(authMW.RequireAdmin)

	admin.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}/approve", userHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}/reject", userHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/members/{id:[0-9]+}", memberHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/gallery/pending", galleryHandler.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/gallery/{id:[0-9]+}/approve", galleryHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/gallery/{id:[0-9]+}/reject", galleryHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/notifications/broadcast", notificationHandler.Broadcast).Methods(http.MethodPost)
	admin.HandleFunc("/monitoring/system", monitoringHandler.System).Methods(http.MethodGet)

	return r
}
