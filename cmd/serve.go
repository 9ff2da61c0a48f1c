package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cdnctl/internal/config"
	"cdnctl/internal/datasource"
	"cdnctl/internal/metrics"
	"cdnctl/internal/server"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveFixtures string
	serveCount    int
	serveSeed     uint64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the in-memory collection over the distributions API",
	Long: `Serves GET /distributions from the in-memory collection, with the same
query and response format as the real API. Use it as a demo backend:

  cdnctl serve --addr :8080 --count 500
  cdnctl config set-url http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()
		if cmd.Flags().Changed("fixtures") {
			settings.Fixtures = serveFixtures
		}
		if cmd.Flags().Changed("count") {
			settings.Count = serveCount
		}
		if cmd.Flags().Changed("seed") {
			settings.Seed = serveSeed
		}

		items, err := loadItems(settings)
		if err != nil {
			return fmt.Errorf("failed to load distributions: %w", err)
		}
		m := metrics.Default()
		ds, err := datasource.NewDistributions(datasource.KindMemory, nil, items, m)
		if err != nil {
			return fmt.Errorf("failed to create data source: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.WithFields(log.Fields{
			"addr":          serveAddr,
			"distributions": len(items),
		}).Info("Starting the server.")
		return server.New(ds, m).ListenAndServe(ctx, serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveFixtures, "fixtures", "", "YAML or JSON file with the distributions to serve")
	serveCmd.Flags().IntVar(&serveCount, "count", 150, "Number of distributions to generate without a fixture file")
	serveCmd.Flags().Uint64Var(&serveSeed, "seed", 1, "Seed of the generated distributions")
}
