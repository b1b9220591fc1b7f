// Package cli реализует командный интерфейс серверного приложения.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд (serve, migrate, create-admin, version);
//   - загрузку .env и конфигурации сервера;
//   - создание логгера по секции log конфига.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/config"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Cfg и Log заполняются в PersistentPreRunE root-команды.
type App struct {
	// ConfigPath — путь к server.yaml.
	ConfigPath string
	// EnvFile — путь к .env. Отсутствие файла не ошибка.
	EnvFile string

	Cfg *config.Config
	Log *logger.HTTPLogger
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "student-crud",
		Short: "Сервер учёта студентов и курсов",
		Long: `Сервер учёта студентов и курсов.

Команды:
  serve         Запустить HTTP-сервер
  migrate       Применить (up) или откатить (down) миграции
  create-admin  Создать пользователя с ролью ADMIN
  version       Версия и дата сборки

Примеры:
  student-crud serve --config ./configs/server.yaml
  student-crud migrate up
  student-crud create-admin --email admin@example.com
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "./configs/server.yaml", "path to server config")
	cmd.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "path to .env file")

	cmd.AddCommand(NewServeCmd(app))
	cmd.AddCommand(NewMigrateCmd(app))
	cmd.AddCommand(NewCreateAdminCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// init загружает .env, конфиг и создаёт логгер.
func (a *App) init() error {
	if a.EnvFile != "" {
		if err := godotenv.Load(a.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.EnvFile, err)
		}
	}

	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	a.Cfg = cfg

	a.Log = logger.New(logger.Options{
		Dir:     cfg.Log.Dir,
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console,
	})
	return nil
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
