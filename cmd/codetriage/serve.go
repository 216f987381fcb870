package codetriage

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codetriage/codetriage/internal/engine"
	"github.com/codetriage/codetriage/internal/server"
)

var (
	flagServePort int
	flagServeHost string
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scans as JSON-RPC tools over HTTP",
		RunE:  runServe,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().IntVar(&flagServePort, "port", 7333, "port to listen on")
	cmd.Flags().StringVar(&flagServeHost, "host", "127.0.0.1", "bind address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.New(buildEngineConfig("."))
	srv := server.NewServer(server.Config{
		Port:            flagServePort,
		Host:            flagServeHost,
		ShutdownTimeout: 5 * time.Second,
	}, eng, nil)
	return srv.Start(ctx)
}
