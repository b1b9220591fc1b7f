package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/api"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// memStore — хранилище в памяти с той же семантикой ошибок, что у repository.
type memStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	courses  map[int64]models.Course
	students map[int64]models.Student
	nextID   int64
	nextSID  int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]models.User{},
		courses:  map[int64]models.Course{},
		students: map[int64]models.Student{},
	}
}

type memUsers struct{ *memStore }
type memCourses struct{ *memStore }
type memStudents struct{ *memStore }

func (s memUsers) Create(_ context.Context, email, hash string, role models.Role) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return uuid.Nil, serr.ErrAlreadyExists
	}
	u := models.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now()}
	s.users[email] = u
	return u.ID, nil
}

func (s memUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return models.User{}, serr.ErrNotFound
	}
	return u, nil
}

func (s memCourses) List(context.Context) ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Course, 0, len(s.courses))
	for id := int64(1); id <= s.nextID; id++ {
		if c, ok := s.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s memCourses) GetByID(_ context.Context, id int64) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return models.Course{}, serr.ErrNotFound
	}
	return c, nil
}

func (s memCourses) Create(_ context.Context, title, description string) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := models.Course{ID: s.nextID, Title: title, Description: description}
	s.courses[c.ID] = c
	return c, nil
}

func (s memCourses) Update(_ context.Context, c models.Course) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[c.ID]; !ok {
		return models.Course{}, serr.ErrNotFound
	}
	s.courses[c.ID] = c
	return c, nil
}

func (s memCourses) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return serr.ErrNotFound
	}
	for _, st := range s.students {
		if st.CourseID == id {
			return serr.ErrConflict
		}
	}
	delete(s.courses, id)
	return nil
}

func (s memStudents) List(context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Student, 0, len(s.students))
	for id := int64(1); id <= s.nextSID; id++ {
		if st, ok := s.students[id]; ok {
			c := s.courses[st.CourseID]
			st.Course = &c
			out = append(out, st)
		}
	}
	return out, nil
}

func (s memStudents) GetByID(_ context.Context, id int64) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		return models.Student{}, serr.ErrNotFound
	}
	return st, nil
}

func (s memStudents) Create(_ context.Context, name, email string, courseID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[courseID]; !ok {
		return 0, serr.ErrNotFound
	}
	s.nextSID++
	s.students[s.nextSID] = models.Student{ID: s.nextSID, Name: name, Email: email, CourseID: courseID}
	return s.nextSID, nil
}

func (s memStudents) Update(_ context.Context, id int64, name string, courseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		return serr.ErrNotFound
	}
	st.Name, st.CourseID = name, courseID
	s.students[id] = st
	return nil
}

func (s memStudents) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return serr.ErrNotFound
	}
	delete(s.students, id)
	return nil
}

type testServer struct {
	handler http.Handler
	auth    *service.AuthService
	store   *memStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := newMemStore()
	tokens := crypto.NewTokenService(crypto.JWTConfig{
		Issuer:     "student-crud",
		SigningKey: "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
	})
	log := logger.NewNop()

	svc := service.NewServices(service.Repositories{
		Users:    memUsers{store},
		Courses:  memCourses{store},
		Students: memStudents{store},
	}, crypto.NewBcryptHasher(4), tokens, log)

	auth := middleware.NewAuthenticator(tokens, memUsers{store}, log)
	h := api.NewHandler(svc, log, auth)

	return &testServer{handler: NewRouter(h, 1<<20), auth: svc.Auth, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Token)
	return *resp.Token
}

// регистрация, неверный пароль, верный пароль, профиль
func TestRouter_RegisterLoginProfile(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "u@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "u@x.com", "password": "wrong"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"token":null,"error":"Неверный пароль"}`, rec.Body.String())

	token := s.login(t, "u@x.com", "secret1")

	rec = s.do(t, http.MethodGet, "/api/profile/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"email":"u@x.com","role":"USER"}`, rec.Body.String())

	// без токена профиль недоступен
	rec = s.do(t, http.MethodGet, "/api/profile/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// повторная регистрация
	rec = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "u@x.com", "password": "secret2"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ADMIN создаёт курс и студента, перевод на несуществующий курс — 404
func TestRouter_AdminCoursesAndStudents(t *testing.T) {
	s := newTestServer(t)

	_, err := s.auth.CreateAdmin(context.Background(), "admin@x.com", "secret1")
	require.NoError(t, err)
	token := s.login(t, "admin@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/courses", token, map[string]string{"title": "Math"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"id":1,"title":"Math","description":""}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/students", token, map[string]any{"name": "Bob", "email": "b@x.com", "courseId": 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t,
		`{"id":1,"name":"Bob","email":"b@x.com","courseId":1,"course":{"id":1,"title":"Math","description":""}}`,
		rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/students/1", token, map[string]any{"name": "Bob", "email": "b@x.com", "courseId": 999})
	require.Equal(t, http.StatusNotFound, rec.Code)

	// курс со студентом удалить нельзя
	rec = s.do(t, http.MethodDelete, "/api/courses/1", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/students/1", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/courses/1", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/courses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

// обычный пользователь читает, но не пишет
func TestRouter_UserCannotMutate(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "u@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := s.login(t, "u@x.com", "secret1")

	rec = s.do(t, http.MethodGet, "/api/courses", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/courses", token, map[string]string{"title": "Math"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/courses", "", map[string]string{"title": "Math"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// битый токен — аноним, значит 401
	rec = s.do(t, http.MethodDelete, "/api/students/1", token+"x", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// токен пользователя, которого больше нет
func TestRouter_StaleToken(t *testing.T) {
	s := newTestServer(t)

	_, err := s.auth.Register(context.Background(), "gone@x.com", "secret1")
	require.NoError(t, err)
	token := s.login(t, "gone@x.com", "secret1")

	s.store.mu.Lock()
	delete(s.store.users, "gone@x.com")
	s.store.mu.Unlock()

	rec := s.do(t, http.MethodGet, "/api/courses", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// /api/auth/* не аутентифицируется
	rec = s.do(t, http.MethodPost, "/api/auth/register", token, map[string]string{"email": "gone@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_BodyTooLarge(t *testing.T) {
	s := newTestServer(t)

	big := strings.Repeat("a", 2<<20)
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": big, "password": "secret1"})
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRouter_RequestIDAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}
