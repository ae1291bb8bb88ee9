package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/api"
	"github.com/sahilchouksey/college-directory/config"
	"github.com/sahilchouksey/college-directory/database"
	"github.com/sahilchouksey/college-directory/handlers"
	"github.com/sahilchouksey/college-directory/utils/response"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	mock.ExpectPing()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}

	app := api.NewApp(1024 * 1024)
	SetupRoutes(app, database.NewGORMStore(db), Options{
		Env:       &config.EnviornmentVariable{ALLOWED_ORIGINS: "http://localhost:3000"},
		LogOutput: io.Discard,
	})
	return app, mock
}

func TestRootBanner(t *testing.T) {
	app, _ := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(body) != handlers.Banner {
		t.Errorf("GET / = %d %q", resp.StatusCode, body)
	}
}

func TestHealth(t *testing.T) {
	app, mock := newTestServer(t)

	mock.ExpectPing()
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("healthy status = %d, want 200", resp.StatusCode)
	}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	resp, err = app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d, want 503", resp.StatusCode)
	}
}

func TestCollegeNotFoundThroughStack(t *testing.T) {
	app, mock := newTestServer(t)

	mock.ExpectQuery(`FROM colleges AS c LEFT JOIN contact_info ci ON ci.college_id = c.id WHERE c.id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/colleges/999999", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var body response.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "College with id 999999 not found" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/universities", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var body response.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != fiber.StatusNotFound || body.Code != "NOT_FOUND" {
		t.Errorf("body = %+v", body)
	}
	if body.Error != "Route GET /api/universities not found" {
		t.Errorf("error = %q", body.Error)
	}
}
