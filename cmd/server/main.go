// @title           Student CRUD API
// @version         1.0
// @description     Students and courses records backend.
// @description     JWT authentication, mutations are available to ADMIN only.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения учёта студентов и курсов.
//
// Вся работа (загрузка .env и конфига, подключение к БД, миграции, запуск
// HTTP(S)-сервера и graceful shutdown) выполняется командами пакета internal/server/cli.
// HTTP API документируется с помощью OpenAPI (Swagger), см. swagger/docs.
package main

import (
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/cli"

	_ "github.com/IvanChernomyrdin/go-student-crud/swagger/docs"
)

var (
	// buildVersion содержит версию приложения, передаваемую при сборке.
	// По умолчанию используется значение "dev".
	buildVersion = "dev"
	// buildDate содержит дату сборки приложения.
	// По умолчанию используется значение "unknown".
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
