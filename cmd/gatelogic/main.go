// Gatelogic Core - Door Entry Verification Service
//
// This is the main entry point for the Gatelogic Core application.
// Gatelogic authenticates passcodes presented by door devices over MQTT,
// registers new passcodes, records entry history, and notifies the
// household by email and SMS on successful entries. An HTTP API exposes
// passcode administration to the web admin frontend.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/gatelogic/gatelogic-core/migrations"

	"github.com/gatelogic/gatelogic-core/internal/api"
	"github.com/gatelogic/gatelogic-core/internal/infrastructure/config"
	"github.com/gatelogic/gatelogic-core/internal/infrastructure/database"
	"github.com/gatelogic/gatelogic-core/internal/infrastructure/influxdb"
	"github.com/gatelogic/gatelogic-core/internal/infrastructure/logging"
	"github.com/gatelogic/gatelogic-core/internal/infrastructure/mqtt"
	"github.com/gatelogic/gatelogic-core/internal/notify"
	"github.com/gatelogic/gatelogic-core/internal/passcode"
	"github.com/gatelogic/gatelogic-core/internal/protocol"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Gatelogic Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Passcode store
	repo := passcode.NewSQLiteRepository(db.DB)
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("reading passcode store: %w", err)
	}
	log.Info("passcode store initialised", "records", count)

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	mqttClient.SetLogger(log)
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional entry history sink)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Notification channels
	dispatcher := buildDispatcher(cfg, repo, log)

	// Protocol engine
	engine := protocol.New(protocol.Deps{
		Store:         repo,
		Bus:           mqttClient,
		Notifier:      dispatcher,
		Events:        eventSink(influxClient),
		Logger:        log,
		NotifyTimeout: cfg.GetNotifyTimeout(),
	})
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("starting protocol engine: %w", err)
	}
	log.Info("protocol engine started")

	// HTTP administration API
	apiServer, err := api.New(api.Deps{
		Config:   cfg.API,
		Security: cfg.Security,
		Logger:   log,
		Repo:     repo,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT
	// 4. Database

	log.Info("Gatelogic Core stopped")
	return nil
}

// buildDispatcher assembles the notification dispatcher from the enabled
// channels. With no channels enabled, Notify becomes a no-op.
func buildDispatcher(cfg *config.Config, repo passcode.Repository, log *logging.Logger) *notify.Dispatcher {
	var channels []notify.Channel

	if cfg.Notifications.Email.Enabled {
		channels = append(channels, notify.NewEmailChannel(cfg.Notifications.Email))
		log.Info("email notifications enabled",
			"host", cfg.Notifications.Email.Host,
			"recipient", cfg.Notifications.Email.Recipient,
		)
	}
	if cfg.Notifications.SMS.Enabled {
		channels = append(channels, notify.NewSMSChannel(cfg.Notifications.SMS, http.DefaultClient))
		log.Info("sms notifications enabled", "to", cfg.Notifications.SMS.To)
	}
	if len(channels) == 0 {
		log.Info("entry notifications disabled")
	}

	return notify.NewDispatcher(repo, log, channels...)
}

// eventSink adapts the optional InfluxDB client to the engine's EventSink.
// A typed nil inside a non-nil interface would defeat the engine's nil
// check, so the conversion is explicit.
func eventSink(client *influxdb.Client) protocol.EventSink {
	if client == nil {
		return nil
	}
	return client
}

// getConfigPath returns the configuration file path.
// Uses GATELOGIC_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GATELOGIC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
