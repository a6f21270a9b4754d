package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/auth"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/config"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/initializers"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/middleware"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/models"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/websocket"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testEnv struct {
	r   *gin.Engine
	hub *websocket.Hub
	srv *httptest.Server
}

// testRouter replica la tabla de rutas del main.
func testRouter(hub *websocket.Hub) *gin.Engine {
	r := gin.New()

	r.POST("/api/login", Login)
	r.GET("/ws", websocket.ServeWs(hub))

	api := r.Group("/api")
	api.Use(middleware.RequireAuth)
	{
		api.GET("/me", Me)
		api.POST("/reports", CreateReport(hub))
		api.GET("/reports", GetReports)
		api.GET("/announcements", GetAnnouncements)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin)
		{
			admin.PUT("/reports/:id", UpdateReport)
			admin.DELETE("/reports/:id", DeleteReport)
			admin.POST("/users", CreateUser)
			admin.GET("/users", GetUsers)
			admin.GET("/users/:id/password", GetUserPassword)
			admin.PUT("/users/:id/password", UpdateUserPassword)
			admin.DELETE("/users/:id", DeleteUser)
			admin.GET("/notifications", GetNotifications)
			admin.PUT("/notifications/:id/read", MarkNotificationRead)
			admin.POST("/announcements", CreateAnnouncement(hub))
			admin.GET("/stats", GetStats)
		}
	}
	return r
}

func setupEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: testSecret}

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Report{}, &models.Notification{}, &models.Announcement{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	initializers.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	hub := websocket.NewHub()
	go hub.Run()

	r := testRouter(hub)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{r: r, hub: hub, srv: srv}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

// dialWS abre una conexión al endpoint /ws del servidor de prueba.
func (e *testEnv) dialWS(t *testing.T) *gorillaws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/ws"
	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for e.hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("ws client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readEnvelope(t *testing.T, conn *gorillaws.Conn) (string, map[string]any) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read ws: %v", err)
	}
	var env struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return env.Type, env.Data
}

func seedUser(t *testing.T, username, password, role, fullName string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  hash,
		Role:      role,
		FullName:  fullName,
		CreatedAt: time.Now().UTC(),
	}
	if err := initializers.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user, testSecret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func sampleReport() map[string]string {
	return map[string]string{
		"expediente":     "EXP-2025-001",
		"tribunal":       "Tribunal Primero",
		"decision":       "Aplazada",
		"observacion":    "Sin novedad",
		"nombre_acusado": "Juan Pérez",
		"fecha":          "2025-08-09",
		"hora":           "09:30",
	}
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
