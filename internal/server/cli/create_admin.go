package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/repository"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/service"
)

// NewCreateAdminCmd создаёт команду создания администратора.
//
// Через HTTP роль ADMIN получить нельзя, это единственный способ.
// Пароль читается из терминала без эха или из stdin (--password-stdin).
//
// Пример использования:
//
//	student-crud create-admin --email admin@example.com
//	echo 'StrongPass' | student-crud create-admin --email admin@example.com --password-stdin
func NewCreateAdminCmd(app *App) *cobra.Command {
	var (
		email     string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Создать пользователя с ролью ADMIN",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := ReadPassword(cmd, fromStdin)
			if err != nil {
				return err
			}

			db, err := OpenDB(cmd.Context(), app.Cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			hasher, err := NewPasswordHasher(app.Cfg)
			if err != nil {
				return err
			}

			// токены здесь не выпускаются
			auth := service.NewAuthService(repository.NewUsersRepository(db), hasher, nil)
			id, err := auth.CreateAdmin(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin created: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "read password from stdin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := trimLineEnding(b)
		if pw == "" {
			return "", errors.New("empty password on stdin")
		}
		return pw, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := trimLineEnding(pwBytes)
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

// trimLineEnding срезает только завершающие \r и \n: пробелы входят в пароль.
func trimLineEnding(b []byte) string {
	return string(bytes.TrimRight(b, "\r\n"))
}
