package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/config"
)

// NewMigrateCmd создаёт команду применения миграций.
//
// Пример использования:
//
//	student-crud migrate up
//	student-crud migrate down
func NewMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Применить или откатить миграции БД",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{config.MigrateUp, config.MigrateDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := OpenDB(cmd.Context(), app.Cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := Migrate(db, app.Cfg.Migrations.Path, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: ok\n", args[0])
			return nil
		},
	}
}
