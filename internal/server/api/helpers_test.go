package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/api"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/service"
	repoMocks "github.com/IvanChernomyrdin/go-student-crud/internal/server/service/mocks"
)

var (
	admin = models.Identity{Email: "admin@x.com", Role: models.RoleAdmin}
	user  = models.Identity{Email: "u@x.com", Role: models.RoleUser}
)

type testDeps struct {
	users    *repoMocks.MockUsersRepo
	courses  *repoMocks.MockCoursesRepo
	students *repoMocks.MockStudentsRepo
	tokens   *repoMocks.MockTokenIssuer
}

// helper: создаёт Handler поверх настоящих сервисов и моков репозиториев
func newTestHandler(t *testing.T) (*api.Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := testDeps{
		users:    repoMocks.NewMockUsersRepo(ctrl),
		courses:  repoMocks.NewMockCoursesRepo(ctrl),
		students: repoMocks.NewMockStudentsRepo(ctrl),
		tokens:   repoMocks.NewMockTokenIssuer(ctrl),
	}
	svc := service.NewServices(service.Repositories{
		Users:    d.users,
		Courses:  d.courses,
		Students: d.students,
	}, crypto.NewBcryptHasher(4), d.tokens, nil)

	return api.NewHandler(svc, nil, nil), d
}

// do выполняет запрос через handler от имени id (пустая Identity — аноним)
func do(t *testing.T, h http.Handler, method, path string, body any, id models.Identity) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(middleware.WithIdentity(req.Context(), id))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
