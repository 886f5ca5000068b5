package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/InvictusNavarchus/ytsubsdown/internal/config"
	"github.com/InvictusNavarchus/ytsubsdown/internal/server"
	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

var (
	servePort    int
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the subtitle API server and web frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()

		port := servePort
		if port == 0 {
			port = cfg.Port
		}

		opts := server.Options{Extractor: youtube.New()}
		if cfg.History && !serveNoStore {
			history, err := server.NewHistoryDB()
			if err != nil {
				color.New(color.FgYellow).Fprintf(os.Stderr, "history disabled: %v\n", err)
			} else {
				opts.History = history
				defer history.Close()
			}
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           server.New(opts).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		done := make(chan os.Signal, 1)
		signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() {
			fmt.Printf("listening on :%d\n", port)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-done:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-history", false, "disable the fetch history database")
	rootCmd.AddCommand(serveCmd)
}
