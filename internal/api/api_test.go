package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmportal/internal/api"
	"pmportal/internal/config"
	"pmportal/internal/directory"
	"pmportal/internal/document"
	"pmportal/internal/logger"
	"pmportal/internal/mission"
	"pmportal/internal/session"
	"pmportal/internal/storage"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	ctx := context.Background()
	log := logger.Silence(io.Discard)
	store := storage.NewMemoryStorage()

	cfg := &config.Config{
		Auth: config.Auth{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
	}

	sessions := session.NewStore(ctx, log, store, session.Config{})
	dir := directory.NewStore(ctx, log, store)
	documents := document.NewStore(ctx, log, store, sessions)
	missions := mission.NewStore(ctx, log, store, sessions)

	app := fiber.New()
	api.NewHandler(log, cfg, sessions, dir, documents, missions).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode(t, resp)["status"])
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		wantStatus int
	}{
		{"admin", "admin@pmerj.gov.br", "admin123", fiber.StatusOK},
		{"user", "joao@pmerj.gov.br", "user123", fiber.StatusOK},
		{"wrong_password", "admin@pmerj.gov.br", "nope", fiber.StatusUnauthorized},
		{"unknown_email", "ghost@pmerj.gov.br", "admin123", fiber.StatusUnauthorized},
		{"missing_password", "admin@pmerj.gov.br", "", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
				"email":    tt.email,
				"password": tt.password,
			})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestLoginReturnsPrincipal(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "joao@pmerj.gov.br",
		"password": "user123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "João Silva", user["name"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")
}

func TestAuthenticationRequired(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no_token", ""},
		{"garbage_token", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, fiber.MethodGet, "/api/documents", tt.token, nil)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAdminOnlyRoutes(t *testing.T) {
	app := newTestApp(t)
	userToken := login(t, app, "joao@pmerj.gov.br", "user123")

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"list_users", fiber.MethodGet, "/api/users"},
		{"export", fiber.MethodGet, "/api/documents/export"},
		{"create_mission", fiber.MethodPost, "/api/missions"},
		{"delete_mission", fiber.MethodDelete, "/api/missions/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, tt.method, tt.path, userToken, nil)
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestDocumentListingIsScoped(t *testing.T) {
	app := newTestApp(t)

	t.Run("admin_sees_everything", func(t *testing.T) {
		token := login(t, app, "admin@pmerj.gov.br", "admin123")
		resp := doJSON(t, app, fiber.MethodGet, "/api/documents", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		docs, _ := decode(t, resp)["documents"].([]any)
		assert.Len(t, docs, 3)
	})

	t.Run("user_sees_own_submissions", func(t *testing.T) {
		token := login(t, app, "joao@pmerj.gov.br", "user123")
		resp := doJSON(t, app, fiber.MethodGet, "/api/documents", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		docs, _ := decode(t, resp)["documents"].([]any)
		require.Len(t, docs, 2)
		for _, raw := range docs {
			doc := raw.(map[string]any)
			submittedBy := doc["submittedBy"].(map[string]any)
			assert.Equal(t, "2", submittedBy["id"])
		}
	})

	t.Run("admin_unit_filter", func(t *testing.T) {
		token := login(t, app, "admin@pmerj.gov.br", "admin123")
		resp := doJSON(t, app, fiber.MethodGet, "/api/documents?unit=1", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		docs, _ := decode(t, resp)["documents"].([]any)
		assert.Len(t, docs, 1)
	})
}

func TestSubmitDocument(t *testing.T) {
	valid := fiber.Map{
		"title":        "Relatório Semanal",
		"unitId":       "2",
		"unitName":     "10º BPM",
		"documentDate": "2025-05-10",
		"fileUrl":      "blob:relatorio",
		"fileName":     "relatorio.pdf",
		"fileType":     "application/pdf",
		"fileSize":     1024,
	}

	t.Run("accepted", func(t *testing.T) {
		app := newTestApp(t)
		token := login(t, app, "joao@pmerj.gov.br", "user123")

		resp := doJSON(t, app, fiber.MethodPost, "/api/documents", token, valid)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		list := doJSON(t, app, fiber.MethodGet, "/api/documents", token, nil)
		docs, _ := decode(t, list)["documents"].([]any)
		assert.Len(t, docs, 3)
	})

	t.Run("rejected_file_type", func(t *testing.T) {
		app := newTestApp(t)
		token := login(t, app, "joao@pmerj.gov.br", "user123")

		bad := fiber.Map{}
		for k, v := range valid {
			bad[k] = v
		}
		bad["fileName"] = "script.exe"
		bad["fileType"] = "application/x-msdownload"

		resp := doJSON(t, app, fiber.MethodPost, "/api/documents", token, bad)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejected_oversize", func(t *testing.T) {
		app := newTestApp(t)
		token := login(t, app, "joao@pmerj.gov.br", "user123")

		big := fiber.Map{}
		for k, v := range valid {
			big[k] = v
		}
		big["fileSize"] = 11 * 1024 * 1024

		resp := doJSON(t, app, fiber.MethodPost, "/api/documents", token, big)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDocumentAccess(t *testing.T) {
	app := newTestApp(t)
	userToken := login(t, app, "joao@pmerj.gov.br", "user123")

	t.Run("own_document", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/documents/1", userToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("someone_elses_document", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/documents/3", userToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing_document", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/documents/999", userToken, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestSetDocumentStatus(t *testing.T) {
	app := newTestApp(t)
	adminToken := login(t, app, "admin@pmerj.gov.br", "admin123")

	resp := doJSON(t, app, fiber.MethodPatch, "/api/documents/1/status", adminToken, fiber.Map{
		"status":  "approved",
		"comment": "Aprovado sem ressalvas",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	get := doJSON(t, app, fiber.MethodGet, "/api/documents/1", adminToken, nil)
	doc := decode(t, get)["document"].(map[string]any)
	assert.Equal(t, "approved", doc["status"])

	t.Run("unknown_status", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPatch, "/api/documents/1/status", adminToken, fiber.Map{
			"status": "archived",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestExportDocuments(t *testing.T) {
	app := newTestApp(t)
	adminToken := login(t, app, "admin@pmerj.gov.br", "admin123")

	resp := doJSON(t, app, fiber.MethodGet, "/api/documents/export", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "documentos-")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Relatório Mensal")
}

func TestUserManagement(t *testing.T) {
	app := newTestApp(t)
	adminToken := login(t, app, "admin@pmerj.gov.br", "admin123")

	t.Run("create", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/users", adminToken, fiber.Map{
			"name":   "Ana Lima",
			"email":  "ana@pmerj.gov.br",
			"role":   "user",
			"unitId": "4",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/users", adminToken, fiber.Map{
			"name":   "Outro João",
			"email":  "joao@pmerj.gov.br",
			"role":   "user",
			"unitId": "2",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("toggle_active", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPatch, "/api/users/2/active", adminToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		get := doJSON(t, app, fiber.MethodGet, "/api/users/2", adminToken, nil)
		user := decode(t, get)["user"].(map[string]any)
		assert.Equal(t, false, user["active"])
	})

	t.Run("delete", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodDelete, "/api/users/4", adminToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		get := doJSON(t, app, fiber.MethodGet, "/api/users/4", adminToken, nil)
		assert.Equal(t, fiber.StatusNotFound, get.StatusCode)
	})
}

func TestMissionListingIsScoped(t *testing.T) {
	app := newTestApp(t)

	t.Run("user_sees_unit_missions", func(t *testing.T) {
		token := login(t, app, "joao@pmerj.gov.br", "user123")
		resp := doJSON(t, app, fiber.MethodGet, "/api/missions", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		missions, _ := decode(t, resp)["missions"].([]any)
		assert.Len(t, missions, 2) // unit 2 missions only, none are "all"
	})

	t.Run("user_day_filter", func(t *testing.T) {
		token := login(t, app, "joao@pmerj.gov.br", "user123")
		resp := doJSON(t, app, fiber.MethodGet, "/api/missions?day=segunda", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		missions, _ := decode(t, resp)["missions"].([]any)
		require.Len(t, missions, 1)
		assert.Equal(t, "segunda", missions[0].(map[string]any)["day"])
	})

	t.Run("admin_sees_everything", func(t *testing.T) {
		token := login(t, app, "admin@pmerj.gov.br", "admin123")
		resp := doJSON(t, app, fiber.MethodGet, "/api/missions", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		missions, _ := decode(t, resp)["missions"].([]any)
		assert.Len(t, missions, 3)
	})
}

func TestMissionLifecycle(t *testing.T) {
	app := newTestApp(t)
	adminToken := login(t, app, "admin@pmerj.gov.br", "admin123")

	t.Run("create_rejects_bad_day", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/missions", adminToken, fiber.Map{
			"title":    "Missão Inválida",
			"day":      "monday",
			"unitId":   "2",
			"unitName": "10º BPM",
			"dueDate":  "2025-06-01T23:59:59",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("create_and_delete", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/missions", adminToken, fiber.Map{
			"title":    "Inventário",
			"day":      "terca",
			"unitId":   "all",
			"unitName": "Todas as Unidades",
			"dueDate":  "2025-06-01T23:59:59",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		list := doJSON(t, app, fiber.MethodGet, "/api/missions", adminToken, nil)
		missions, _ := decode(t, list)["missions"].([]any)
		require.Len(t, missions, 4)
		created := missions[3].(map[string]any)

		del := doJSON(t, app, fiber.MethodDelete, "/api/missions/"+created["id"].(string), adminToken, nil)
		assert.Equal(t, fiber.StatusOK, del.StatusCode)
	})
}

func TestSubmissionOwnership(t *testing.T) {
	app := newTestApp(t)
	userToken := login(t, app, "joao@pmerj.gov.br", "user123")

	t.Run("submit_report", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/missions/2/submissions", userToken, fiber.Map{
			"fileName": "escala.pdf",
			"fileUrl":  "blob:escala",
			"fileType": "application/pdf",
			"fileSize": 512,
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("delete_own_submission", func(t *testing.T) {
		// seeded submission 1 on mission 1 belongs to joão
		resp := doJSON(t, app, fiber.MethodDelete, "/api/missions/1/submissions/1", userToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestUserRoutesNotAdminGated(t *testing.T) {
	app := newTestApp(t)
	userToken := login(t, app, "joao@pmerj.gov.br", "user123")

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"me", fiber.MethodGet, "/api/auth/me"},
		{"units", fiber.MethodGet, "/api/units"},
		{"missions", fiber.MethodGet, "/api/missions"},
		{"dashboard", fiber.MethodGet, "/api/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, tt.method, tt.path, userToken, nil)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}

	// Logout last: it clears the shared session.
	t.Run("logout", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/logout", userToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestSubmissionAttribution(t *testing.T) {
	app := newTestApp(t)
	userToken := login(t, app, "joao@pmerj.gov.br", "user123")

	// A later login must not change who a request's token attributes: the
	// report below carries joão's token and is credited to him even though
	// the admin logged in afterwards.
	login(t, app, "admin@pmerj.gov.br", "admin123")

	resp := doJSON(t, app, fiber.MethodPost, "/api/missions/2/submissions", userToken, fiber.Map{
		"fileName": "escala.pdf",
		"fileUrl":  "blob:escala",
		"fileType": "application/pdf",
		"fileSize": 512,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	get := doJSON(t, app, fiber.MethodGet, "/api/missions/2", userToken, nil)
	require.Equal(t, fiber.StatusOK, get.StatusCode)

	m := decode(t, get)["mission"].(map[string]any)
	subs, _ := m["submissions"].([]any)
	require.Len(t, subs, 1)
	sub := subs[0].(map[string]any)
	assert.Equal(t, "2", sub["userId"])
	assert.Equal(t, "João Silva", sub["userName"])
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "joao@pmerj.gov.br", "user123")

	resp := doJSON(t, app, fiber.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	docs, ok := body["documents"].(map[string]any)
	require.True(t, ok)
	// joão's two seeded documents: one pending, one approved
	assert.Equal(t, float64(2), docs["total"])
	assert.Equal(t, float64(1), docs["pending"])
	assert.Equal(t, float64(1), docs["approved"])
	assert.Contains(t, body, "expiredMissions")
}
