package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sociograph/sociograph/internal/etl"
	"github.com/sociograph/sociograph/internal/profile"
	"github.com/sociograph/sociograph/server"
	"github.com/sociograph/sociograph/server/ai"
	"github.com/sociograph/sociograph/server/runner/embedding"
	"github.com/sociograph/sociograph/store"
	"github.com/sociograph/sociograph/store/db"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "sociograph",
	Short: "Social graph recommendation service",
	Run: func(_ *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		instanceProfile, storeInstance, err := setupStore(ctx)
		if err != nil {
			slog.Error("failed to set up store", "error", err)
			os.Exit(1)
		}

		s, err := server.NewServer(instanceProfile, storeInstance)
		if err != nil {
			cancel()
			slog.Error("failed to create server", "error", err)
			os.Exit(1)
		}

		if instanceProfile.IsEmbedderEnabled() {
			provider, err := ai.NewProvider(ai.NewConfigFromProfile(instanceProfile))
			if err != nil {
				slog.Warn("embedding provider disabled", "error", err)
			} else {
				runner := embedding.NewRunner(storeInstance, ai.NewJobEmbedder(provider))
				go runner.Run(ctx)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			slog.Info("shutting down")
			s.Shutdown(ctx)
			cancel()
		}()

		slog.Info("server started",
			"version", version,
			"mode", instanceProfile.Mode,
			"addr", instanceProfile.Addr,
			"port", instanceProfile.Port,
			"driver", instanceProfile.Driver,
		)
		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", "error", err)
			cancel()
			os.Exit(1)
		}

		// Wait for the signal handler to finish shutdown.
		<-ctx.Done()
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load SNAP edge lists, feature files, and job CSVs into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		_, storeInstance, err := setupStore(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		loader := etl.NewLoader(storeInstance)
		if path, _ := cmd.Flags().GetString("edges"); path != "" {
			if _, err := loader.LoadEdges(ctx, path); err != nil {
				return err
			}
		}
		if path, _ := cmd.Flags().GetString("features"); path != "" {
			if _, err := loader.LoadFeatures(ctx, path); err != nil {
				return err
			}
		}
		if path, _ := cmd.Flags().GetString("targets"); path != "" {
			if _, err := loader.LoadTargets(ctx, path); err != nil {
				return err
			}
		}
		if path, _ := cmd.Flags().GetString("jobs"); path != "" {
			if _, err := loader.LoadJobs(ctx, path); err != nil {
				return err
			}
		}
		return nil
	},
}

// setupStore builds the profile, opens the database, and runs migrations.
func setupStore(ctx context.Context) (*profile.Profile, *store.Store, error) {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version,
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return nil, nil, err
	}

	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return nil, nil, err
	}
	storeInstance := store.New(dbDriver, instanceProfile)
	if err := storeInstance.Migrate(ctx); err != nil {
		return nil, nil, err
	}
	return instanceProfile, storeInstance, nil
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("sociograph")

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	loadCmd.Flags().String("edges", "", "path to a SNAP edge list")
	loadCmd.Flags().String("features", "", "path to a SNAP feature file")
	loadCmd.Flags().String("targets", "", "path to a user name CSV")
	loadCmd.Flags().String("jobs", "", "path to a job posting CSV")
	rootCmd.AddCommand(loadCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
