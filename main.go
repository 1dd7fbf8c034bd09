package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/nstehr/starfall/starfall-core/agent"
	"github.com/nstehr/starfall/starfall-core/config"
	"github.com/nstehr/starfall/starfall-core/ipc"
	"github.com/nstehr/starfall/starfall-core/model"
	"github.com/nstehr/starfall/starfall-core/world"
)

const banner = `
  *    .   ___ _____ _   ___ ___ _   _    _       .
     .    / __|_   _/_\ | _ \ __/_\ | |  | |  *
  .       \__ \ | |/ _ \|   / _/ _ \| |__| |__
     *    |___/ |_/_/ \_\_|_\_/_/ \_\____|____|  .

Two-Faction Territory Conquest`

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: settings.Level(),
	}))
	slog.SetDefault(logger)
	model.Debug = settings.Debug

	fmt.Println(banner)

	if err := run(settings); err != nil {
		slog.Error("starfall exited", "error", err)
		os.Exit(1)
	}
}

func run(settings config.Settings) error {
	balance := config.Default()
	if settings.BalanceFile != "" {
		b, err := config.Load(settings.BalanceFile)
		if err != nil {
			return err
		}
		balance = b
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("starting starfall", "mode", settings.Mode, "personality", settings.Personality, "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ipc.NewHub()
	go hub.Run(ctx)

	runner, err := agent.NewRunner(world.Options{
		Balance:     balance,
		Mode:        settings.Mode,
		Personality: settings.Personality,
		Seed:        seed,
	}, hub, settings.FrameInterval)
	if err != nil {
		return err
	}

	newSession := func(conn *ipc.Connection) *agent.Session {
		limiter := rate.NewLimiter(rate.Limit(settings.CommandRate), settings.CommandBurst)
		return agent.NewSession(conn, runner, hub, limiter)
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(settings.SocketPath); err != nil {
		return fmt.Errorf("clean up socket %s: %w", settings.SocketPath, err)
	}
	listener, err := net.Listen("unix", settings.SocketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", settings.SocketPath, err)
	}
	defer listener.Close()
	defer os.Remove(settings.SocketPath)
	slog.Info("listening on domain socket", "path", settings.SocketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted", "transport", "unix")
			go newSession(ipc.NewConnection(ipc.NewStreamTransport(conn), nil)).Serve()
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := ipc.Upgrade(w, r)
		if err != nil {
			slog.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		slog.Info("new connection accepted", "transport", "websocket", "remote", r.RemoteAddr)
		newSession(conn).Serve()
	})
	srv := &http.Server{Addr: settings.HTTPAddr, Handler: mux}
	go func() {
		slog.Info("listening for websockets", "addr", settings.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	go func() {
		if err := runner.Run(ctx); err != nil {
			slog.Error("game loop failed", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
