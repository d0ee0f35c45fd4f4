package api_test

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/mentorhub/mentorhub/api"
	dbfs "github.com/mentorhub/mentorhub/db"
	"github.com/mentorhub/mentorhub/internal/config"
	dbpkg "github.com/mentorhub/mentorhub/internal/db"
	sqlite "github.com/mentorhub/mentorhub/internal/repository/sqlite"
	"github.com/mentorhub/mentorhub/pkg/models"
)

const testSecret = "test-secret"

var dbSeq atomic.Int64

var emptySeedFS embed.FS

type testAPI struct {
	router *mux.Router
	repo   *sqlite.SQLiteRepo
}

// setupAPI wires the full router against a fresh in-memory database, no seeds.
func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", dbSeq.Add(1))
	d, err := dbpkg.New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations, emptySeedFS); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		Addr:          ":0",
		JWTSecret:     testSecret,
		TokenDuration: time.Hour,
		ScanInterval:  10 * time.Second,
	}

	return &testAPI{
		router: api.SetupRoutes(cfg, "test", "now", d),
		repo:   sqlite.New(d, nil),
	}
}

func (a *testAPI) createUser(t *testing.T, name, email, role string) int64 {
	t.Helper()
	id, err := a.repo.CreateUser(context.Background(), &models.User{Name: name, Email: email, Role: role, Status: "active"})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return id
}

func tokenFor(t *testing.T, id int64, email, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// do performs a request against the router; a non-empty token goes into the
// Authorization header, body is encoded as JSON unless it already is a string.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}
