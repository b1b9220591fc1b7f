package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/config"
)

// NewServeCmd создаёт команду запуска HTTP(S)-сервера.
//
// Команда:
//   - подключается к базе данных;
//   - применяет миграции, если migrations.enabled;
//   - запускает сервер (HTTPS при tls.enabled);
//   - по SIGINT/SIGTERM/SIGQUIT корректно завершает работу с таймаутом из конфига.
func NewServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			// создаём контекст, который отменится по сигналу
			ctx, stop := signal.NotifyContext(
				cmd.Context(),
				os.Interrupt,
				syscall.SIGTERM,
				syscall.SIGQUIT,
			)
			defer stop()

			return serve(ctx, app)
		},
	}
}

func serve(ctx context.Context, app *App) error {
	cfg, log := app.Cfg, app.Log
	sugar := log.Sugar()
	defer func() { _ = log.Sync() }()

	// подключаем базу данных
	db, err := OpenDB(ctx, cfg.DB)
	if err != nil {
		return err
	}
	// делаем отложенное закрытие бд
	defer db.Close()

	if cfg.Migrations.Enabled {
		if err := Migrate(db, cfg.Migrations.Path, config.MigrateUp); err != nil {
			return err
		}
		sugar.Info("migrations applied")
	}

	server, err := NewHTTPServer(cfg, db, log)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (tls=%t)", server.Addr, cfg.TLS.Enabled)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}
	sugar.Info("server gracefully stopped")
	return nil
}
