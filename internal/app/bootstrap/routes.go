// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	adminfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/admin"
	authfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/auth"
	callsfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/calls"
	contactsfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/contacts"
	cryptofeature "github.com/emeraldorbit/emeraldhub/internal/app/features/crypto"
	healthfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/health"
	notificationsfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/notifications"
	propertiesfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/properties"
	songsfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/songs"
	statusfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/status"
	subscriptionsfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/subscriptions"
	workspacesfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/workspaces"
	callstore "github.com/emeraldorbit/emeraldhub/internal/app/store/calls"
	contactstore "github.com/emeraldorbit/emeraldhub/internal/app/store/contacts"
	cryptostore "github.com/emeraldorbit/emeraldhub/internal/app/store/crypto"
	notificationstore "github.com/emeraldorbit/emeraldhub/internal/app/store/notifications"
	propertystore "github.com/emeraldorbit/emeraldhub/internal/app/store/properties"
	sessionstore "github.com/emeraldorbit/emeraldhub/internal/app/store/sessions"
	songstore "github.com/emeraldorbit/emeraldhub/internal/app/store/songs"
	statusstore "github.com/emeraldorbit/emeraldhub/internal/app/store/status"
	substore "github.com/emeraldorbit/emeraldhub/internal/app/store/subscriptions"
	userstore "github.com/emeraldorbit/emeraldhub/internal/app/store/users"
	workspacestore "github.com/emeraldorbit/emeraldhub/internal/app/store/workspaces"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/broker"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/metrics"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/password"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/ratelimit"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/timeouts"
)

// authLimiter sweeps idle clients in the background; Shutdown stops it.
var authLimiter *ratelimit.Limiter

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection, schema setup,
// and the Startup hook have completed. Every request flows through the
// metrics middleware and the session resolver; route-level guards in
// the features decide who gets through.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	sessions := sessionstore.New(db, appCfg.SessionExpiry)
	contacts := contactstore.New(db)
	calls := callstore.New(db)
	songs := songstore.New(db)
	properties := propertystore.New(db)
	subscriptions := substore.New(db)
	workspaces := workspacestore.New(db)
	notifications := notificationstore.New(db)
	crypto := cryptostore.New(db)
	status := statusstore.New(db)

	collector := metrics.NewCollector()

	var brokerClient *broker.Client
	if appCfg.BrokerURL != "" {
		brokerClient = broker.NewClient(appCfg.BrokerURL, timeouts.Broker())
	}

	resolver := &auth.Resolver{
		Sessions: sessions,
		Users:    users,
		Metrics:  collector,
		Logger:   logger,
	}

	authLimiter = ratelimit.New(rate.Limit(appCfg.AuthRateLimit), appCfg.AuthRateBurst)

	authHandler := authfeature.NewHandler(users, sessions,
		password.NewHasher(appCfg.BcryptCost), brokerClient, collector, logger)
	adminHandler := &adminfeature.Handler{
		Users:         users,
		Sessions:      sessions,
		Contacts:      contacts,
		Calls:         calls,
		Songs:         songs,
		Properties:    properties,
		Subscriptions: subscriptions,
		Workspaces:    workspaces,
		Notifications: notifications,
		Crypto:        crypto,
		Log:           logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(collector.Middleware)
	r.Use(resolver.LoadSessionUser)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authfeature.Routes(authHandler, authLimiter))
		r.Mount("/admin", adminfeature.Routes(adminHandler))
		r.Mount("/contacts", contactsfeature.Routes(contactsfeature.NewHandler(contacts, logger)))
		r.Mount("/calls", callsfeature.Routes(callsfeature.NewHandler(calls, logger)))
		r.Mount("/songs", songsfeature.Routes(songsfeature.NewHandler(songs, logger)))
		r.Mount("/properties", propertiesfeature.Routes(propertiesfeature.NewHandler(properties, logger)))
		r.Mount("/subscriptions", subscriptionsfeature.Routes(subscriptionsfeature.NewHandler(subscriptions, logger)))
		r.Mount("/workspaces", workspacesfeature.Routes(workspacesfeature.NewHandler(workspaces, logger)))
		r.Mount("/notifications", notificationsfeature.Routes(notificationsfeature.NewHandler(notifications, logger)))
		r.Mount("/crypto", cryptofeature.Routes(cryptofeature.NewHandler(crypto, logger)))
		r.Mount("/status", statusfeature.Routes(statusfeature.NewHandler(status, logger)))
		r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))
	})

	r.Method(http.MethodGet, "/metrics", collector.Handler())

	return r, nil
}
