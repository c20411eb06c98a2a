package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/config"
	"github.com/goodbooks/goodbooks-api/database"
	"github.com/goodbooks/goodbooks-api/ingest"
	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/server"
	"github.com/goodbooks/goodbooks-api/store"
	"github.com/goodbooks/goodbooks-api/version"
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:     "goodbooks",
		Short:   "GoodBooks is a REST API for book ratings and recommendations",
		Version: version.GetCurrentVersion(),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			s, err := openStore(ctx)
			if err != nil {
				log.Error("Error opening store", zap.Error(err))
				return
			}
			defer s.Close()

			httpServer, err := server.StartServer(ctx, s)
			if err != nil {
				log.Error("Error starting server", zap.Error(err))
				return
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			log.Info("Shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
		},
	}

	ingestCmd = &cobra.Command{
		Use:   "ingest [dir]",
		Short: "Bulk-load the goodbooks CSV files from a directory",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			s, err := openStore(ctx)
			if err != nil {
				log.Error("Error opening store", zap.Error(err))
				return
			}
			defer s.Close()

			if err := ingest.Run(s, args[0]); err != nil {
				log.Error("Error importing dataset", zap.Error(err))
				os.Exit(1)
			}
		},
	}
)

func openStore(ctx context.Context) (*store.Store, error) {
	db, err := database.NewDB()
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, ctx); err != nil {
		db.Close()
		return nil, err
	}

	s := store.NewStore(db)
	if err := s.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func init() {
	cobra.OnInitialize(func() {
		if _, err := config.GetConfig(); err != nil {
			os.Exit(1)
		}
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				log.Error("Error parsing config file", zap.Error(err))
				os.Exit(1)
			}
		}
		log.Logger = log.NewLogger()
	})

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")
	rootCmd.AddCommand(ingestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	defer log.Logger.Sync()
}
