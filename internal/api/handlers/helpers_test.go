package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/api/middleware"
	"github.com/umg-robotica/pistas-backend/internal/models"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the auth middleware on protected routes.
func asUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UsernameKey, username)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performRawGet(t *testing.T, router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedAdmin(t *testing.T, db *gorm.DB, username string) *models.Administrador {
	t.Helper()
	admin := models.Administrador{
		Username: username,
		Nombre:   "Admin " + username,
		Email:    username + "@robot.edu",
		Activo:   true,
	}
	require.NoError(t, admin.SetPassword("password123"))
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func seedPista(t *testing.T, db *gorm.DB, nombre string, activa bool) *models.Pista {
	t.Helper()
	pista := models.Pista{Nombre: nombre, ConfiguracionJSON: "{}", Activa: activa}
	require.NoError(t, db.Create(&pista).Error)
	if !activa {
		// GORM drops a zero-value Activa=false on create in favor of the
		// column's default:true, so persist it explicitly.
		require.NoError(t, db.Model(&pista).UpdateColumn("activa", false).Error)
	}
	return &pista
}
