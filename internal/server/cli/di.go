package cli

import (
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/config"
)

// для тестов
var (
	OpenDB       = config.OpenDB
	Migrate      = config.Migrate
	ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
)
