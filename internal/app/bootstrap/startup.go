// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	sessionstore "github.com/emeraldorbit/emeraldhub/internal/app/store/sessions"
	userstore "github.com/emeraldorbit/emeraldhub/internal/app/store/users"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/timeouts"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/workers"
)

// sessionCleanup is started here and stopped in Shutdown.
var sessionCleanup *workers.SessionCleanup

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Broker: appCfg.BrokerTimeout})

	// Promote the configured superadmin if the account exists. Absence
	// is not an error; promotion happens on a later startup once they
	// have registered.
	if appCfg.SuperAdminEmail != "" {
		users := userstore.New(deps.MongoDatabase)
		found, err := users.EnsureAdminRole(ctx, appCfg.SuperAdminEmail)
		if err != nil {
			return err
		}
		if found {
			logger.Info("superadmin role ensured", zap.String("email", appCfg.SuperAdminEmail))
		} else {
			logger.Warn("superadmin account not found yet", zap.String("email", appCfg.SuperAdminEmail))
		}
	}

	sessions := sessionstore.New(deps.MongoDatabase, appCfg.SessionExpiry)
	sessionCleanup = workers.NewSessionCleanup(sessions, logger, appCfg.SessionCleanupInterval)
	sessionCleanup.Start()

	return nil
}
