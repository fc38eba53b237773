package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/muhafiz/muhafiz-api/app/controllers"
	"github.com/muhafiz/muhafiz-api/app/models"
	"github.com/muhafiz/muhafiz-api/app/repository"
	"github.com/muhafiz/muhafiz-api/internal/pkg/config"
	"github.com/muhafiz/muhafiz-api/internal/pkg/geodata"
	"github.com/muhafiz/muhafiz-api/internal/pkg/router"
	"github.com/muhafiz/muhafiz-api/internal/pkg/security"
	"github.com/muhafiz/muhafiz-api/internal/pkg/storage"
	"github.com/muhafiz/muhafiz-api/internal/pkg/testutil"
	"github.com/muhafiz/muhafiz-api/internal/pkg/upload"
)

const testSecret = "controller-test-secret"

type testEnv struct {
	app       *fiber.App
	repos     *repository.Repositories
	uploadDir string
}

// newTestEnv builds the production route table on a fresh app backed by an
// in-memory database and a temporary upload directory. A nil geo points the
// zone proxy at an unreachable upstream.
func newTestEnv(t *testing.T, geo controllers.GeodataClient) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)
	if geo == nil {
		geo = geodata.NewClient("http://127.0.0.1:1/zones", "http://127.0.0.1:1/route", time.Second)
	}

	app := fiber.New()
	router.InstallRouter(app, router.Dependencies{
		Config: &config.Config{
			JWTSecret: testSecret,
			Media: config.MediaConfig{
				Driver:    config.MediaDriverLocal,
				UploadDir: dir,
			},
		},
		DB:       db,
		Repos:    repos,
		Ingestor: upload.NewIngestor(store),
		Geodata:  geo,
	})

	return &testEnv{app: app, repos: repos, uploadDir: dir}
}

func tokenFor(t *testing.T, userID, name string) string {
	t.Helper()
	token, err := security.GenerateToken(security.Claims{ID: userID, Name: name}, time.Hour, testSecret)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func jsonRequest(t *testing.T, method, target, token string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		switch p := payload.(type) {
		case string:
			body = bytes.NewBufferString(p)
		default:
			b, err := json.Marshal(p)
			require.NoError(t, err)
			body = bytes.NewReader(b)
		}
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

type filePart struct {
	field       string
	filename    string
	contentType string
	content     string
}

func multipartRequest(t *testing.T, target, token string, values map[string][]string, files ...filePart) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, vals := range values {
		for _, v := range vals {
			require.NoError(t, writer.WriteField(key, v))
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		w, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req
}

func decodeMap(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func decodeList(t *testing.T, body []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func createUser(t *testing.T, repos *repository.Repositories, name, email string) *models.User {
	t.Helper()
	user, err := models.CreateUser(name, email, "secret123", "")
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(user))
	return user
}

func TestUserController(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", "", fiber.Map{
		"name": "Ayesha Khan", "email": "Ayesha@Example.com", "password": "secret123",
	}))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	created := decodeMap(t, body)
	assert.Equal(t, "ayesha@example.com", created["email"])
	assert.Equal(t, models.ROLE_USER, created["role"])
	assert.NotContains(t, created, "password")
	id := created["_id"].(string)

	t.Run("duplicate email", func(t *testing.T) {
		resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", "", fiber.Map{
			"name": "Other", "email": "ayesha@example.com", "password": "secret123",
		}))
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Contains(t, decodeMap(t, body), "msg")
	})

	t.Run("role cannot be self-assigned", func(t *testing.T) {
		resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", "", fiber.Map{
			"name": "Mallory", "email": "mallory@example.com", "password": "secret123", "role": models.ROLE_ADMIN,
		}))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
		assert.Equal(t, models.ROLE_USER, decodeMap(t, body)["role"])

		stored, err := env.repos.User.GetByEmail("mallory@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.ROLE_USER, stored.Role)
		require.NoError(t, env.repos.User.Delete(stored.ID))
	})

	t.Run("validation", func(t *testing.T) {
		resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/users", "", fiber.Map{
			"name": "Bad", "email": "not-an-email", "password": "secret123",
		}))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeMap(t, body), "msg")

		resp, _ = env.do(t, jsonRequest(t, http.MethodPost, "/api/users", "", fiber.Map{
			"name": "Short", "email": "short@example.com", "password": "123",
		}))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list hides passwords", func(t *testing.T) {
		resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/users", nil))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		users := decodeList(t, body)
		require.Len(t, users, 1)
		assert.NotContains(t, users[0], "password")
	})

	t.Run("delete", func(t *testing.T) {
		resp, body := env.do(t, httptest.NewRequest(http.MethodDelete, "/api/users/"+id, nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "User deleted successfully", decodeMap(t, body)["msg"])

		resp, body = env.do(t, httptest.NewRequest(http.MethodDelete, "/api/users/"+id, nil))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "User not found", decodeMap(t, body)["msg"])
	})
}

// racingUserRepo reports the email as free and then loses the insert, as a
// concurrent registration of the same address would.
type racingUserRepo struct {
	repository.UserRepository
}

func (racingUserRepo) GetByEmail(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (racingUserRepo) Create(*models.User) error {
	return fmt.Errorf("insert user: %w", gorm.ErrDuplicatedKey)
}

func TestUserController_RegisterLosesInsertRace(t *testing.T) {
	app := fiber.New()
	app.Post("/api/users", controllers.NewUserController(racingUserRepo{}).HandleRegister)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users", "", fiber.Map{
		"name": "Ayesha Khan", "email": "ayesha@example.com", "password": "secret123",
	}), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already registered", decodeMap(t, body)["msg"])
}

func TestCommunityController(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, topic := range []fiber.Map{
		{"category": "Safety", "title": "Street lights", "posts": 3, "lastActive": "2024-01-01"},
		{"category": "Safety", "title": "Night patrol", "lastActive": "2024-03-01"},
	} {
		resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/community/topics", "", topic))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	}

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/community/topics", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	topics := decodeList(t, body)
	require.Len(t, topics, 2)
	assert.Equal(t, "Night patrol", topics[0]["title"])
	assert.Equal(t, float64(0), topics[0]["posts"])

	resp, body = env.do(t, jsonRequest(t, http.MethodPost, "/api/community/topics", "", fiber.Map{"title": "No category"}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, body), "msg")

	resp, body = env.do(t, jsonRequest(t, http.MethodPost, "/api/community/resources", "", fiber.Map{
		"title": "Emergency numbers", "type": "PDF", "size": "120KB",
	}))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	assert.NotEmpty(t, decodeMap(t, body)["_id"])

	resp, _ = env.do(t, jsonRequest(t, http.MethodPost, "/api/community/resources", "", fiber.Map{"title": "Missing"}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/community/resources", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, body), 1)
}

func TestChannelController(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenFor(t, "user-1", "Bilal")

	t.Run("requires token", func(t *testing.T) {
		resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/discussion-channels", "", fiber.Map{"title": "x"}))
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Token required", decodeMap(t, body)["msg"])

		resp, body = env.do(t, jsonRequest(t, http.MethodPost, "/api/discussion-channels", "garbage", fiber.Map{"title": "x"}))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", decodeMap(t, body)["msg"])
	})

	resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/discussion-channels", token, fiber.Map{
		"title": "Lyari Watch", "category": "Neighbourhood", "tags": []string{"lyari"},
	}))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	out := decodeMap(t, body)
	assert.Equal(t, true, out["success"])
	channel := out["channel"].(map[string]any)
	assert.Equal(t, "user-1", channel["createdBy"])
	assert.Equal(t, models.VISIBILITY_PUBLIC, channel["visibility"])
	id := channel["_id"].(string)

	t.Run("validation", func(t *testing.T) {
		resp, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/discussion-channels", token, fiber.Map{"title": "No category"}))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		out := decodeMap(t, body)
		assert.Equal(t, false, out["success"])
		assert.NotEmpty(t, out["error"])
	})

	t.Run("list and get", func(t *testing.T) {
		resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/discussion-channels", nil))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decodeMap(t, body)["channels"], 1)

		resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/discussion-channels/"+id, nil))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Lyari Watch", decodeMap(t, body)["channel"].(map[string]any)["title"])

		resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/discussion-channels/missing", nil))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Channel not found", decodeMap(t, body)["error"])
	})
}
