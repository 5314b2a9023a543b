package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/propchain/bridge/config"
	"github.com/propchain/bridge/internal/bridge"
	"github.com/propchain/bridge/pkg/api"
	"github.com/propchain/bridge/pkg/db"
	"github.com/propchain/bridge/pkg/events"
	"github.com/propchain/bridge/pkg/ledger"
	"github.com/propchain/bridge/pkg/openobserve"
	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	environment string
	rootCmd     = &cobra.Command{
		Use:   "bridged",
		Short: "Property Bridge",
		Run:   run,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) {
	config.InitLogger()

	if err := config.Load(environment); err != nil {
		log.Fatal().Err(err).Msg("[Bridged] failed to load config")
	}
	cfg := config.GlobalConfig

	shutdownTracing := openobserve.Init(openobserve.OpenObserveConfig{
		Endpoint:    cfg.Telemetry.Endpoint,
		Credential:  cfg.Telemetry.Credential,
		ServiceName: cfg.Telemetry.ServiceName,
		Env:         viper.GetString("ENV"),
	})

	var store bridge.Store
	if cfg.Database.URL != "" {
		adapter, err := db.NewDatabaseAdapter(cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("[Bridged] failed to create database adapter")
		}
		store = adapter
	} else {
		log.Warn().Msg("[Bridged] no database url configured, state is in-memory only")
		store = bridge.NewMemoryStore()
	}

	assetLedger := ledger.New()
	registry := ledger.NewRegistry(cfg.OperatorAccounts()...)
	bus := events.NewEventBus()

	svc := bridge.NewService(
		cfg.BridgeConfig(),
		types.ChainID(cfg.Bridge.SourceChain),
		types.AccountID(cfg.Bridge.Admin),
		store,
		assetLedger,
		assetLedger,
		registry,
		bus,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.MongoURI != "" {
		archive, err := db.NewAuditArchive(ctx, cfg.Database.MongoURI, cfg.Database.MongoDatabase)
		if err != nil {
			log.Fatal().Err(err).Msg("[Bridged] failed to create audit archive")
		}
		go archive.Run(ctx, bus.Subscribe(events.SubscribeAll))
	}

	server := api.NewServer(svc)
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := server.Start(address); err != nil {
			log.Info().Err(err).Msg("[Bridged] api server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Bridged] shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("[Bridged] api server shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("[Bridged] trace exporter shutdown failed")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&environment,
		"env",
		"local",
		"Environment name pointing to the configuration file",
	)
	viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env"))
}
