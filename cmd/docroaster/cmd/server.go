package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/docroaster/console/app"
	"github.com/docroaster/console/backend"
	"github.com/docroaster/console/config"
	"github.com/docroaster/console/session"
	"github.com/docroaster/console/web"
)

var (
	listenAddr string
	apiURL     string
	dataDir    string
	tlsCert    string
	tlsKey     string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the web console server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Flags override the environment.
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}
		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		sessions, err := session.NewBoltStoreFromFile(cfg.DataDir+"/sessions.db", nil)
		if err != nil {
			return fmt.Errorf("failed to open session storage: %w", err)
		}
		defer sessions.Close()

		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		client := backend.New(cfg.APIURL)
		console := app.New(client, sessions, app.WithLogger(logger))

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		staticHandler, err := web.Handler()
		if err != nil {
			return err
		}
		r.Handle("/static/*", staticHandler)

		r.Mount("/", console.Router())

		server := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		useTLS := tlsCert != "" && tlsKey != ""
		if useTLS {
			cert, err := tls.LoadX509KeyPair(tlsCert, tlsKey)
			if err != nil {
				return fmt.Errorf("failed to load TLS key pair: %w", err)
			}
			server.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			var err error
			if useTLS {
				err = server.ListenAndServeTLS("", "")
			} else {
				err = server.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Console listening on %s (API: %s, data: %s)...\n", cfg.ListenAddr, cfg.APIURL, cfg.DataDir)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	serverCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides LISTEN_ADDR)")
	serverCmd.Flags().StringVarP(&apiURL, "api-url", "a", "", "Doc.Roaster API base URL (overrides API_URL)")
	serverCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "directory for the session database (overrides DATA_DIR)")
	serverCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "path to TLS certificate")
	serverCmd.Flags().StringVar(&tlsKey, "tls-key", "", "path to TLS private key")
	rootCmd.AddCommand(serverCmd)
}
