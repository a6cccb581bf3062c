package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbmp/go-formbank/internal/server"
	"github.com/hbmp/go-formbank/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the form pipeline over HTTP",
	Long: `Serve exposes validate and generate as a JSON API, plus a listing of
recorded build results. Requests are authenticated with the bearer token
from the config when one is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = appConfig.Server.Addr
	}

	db, err := store.Open(appConfig.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := server.New(newPipeline(),
		server.WithLogger(logger),
		server.WithToken(appConfig.Server.Token),
		server.WithBankPath(appConfig.Bank.Path),
		server.WithResults(db),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server", zap.String("addr", addr))
	return srv.ListenAndServe(ctx, addr)
}
