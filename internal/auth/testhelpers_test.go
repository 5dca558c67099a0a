package auth

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/store"
)

const testSecret = "test-secret-key-32bytes-long!!"

func newTestTokenService() *TokenService {
	return NewTokenService([]byte(testSecret), 15*time.Minute, 7*24*time.Hour)
}

// testEnv opens an in-memory database with auth tables.
func testEnv(t *testing.T) (*UserStore, *Service) {
	t.Helper()

	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us, err := NewUserStore(context.Background(), db)
	if err != nil {
		t.Fatalf("NewUserStore: %v", err)
	}
	return us, NewService(us, newTestTokenService(), zap.NewNop())
}

func mustCreateUser(t *testing.T, svc *Service, username string, role Role) *User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), NewUser{
		Username: username,
		Email:    username + "@pitstop.local",
		Name:     username,
		Password: "password123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

func doRequest(h http.Handler, method, path string, body any, claims *Claims) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if claims != nil {
		req = req.WithContext(WithClaims(req.Context(), claims))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func claimsFor(role Role) *Claims {
	return &Claims{UserID: "test-" + string(role), Username: string(role), Role: role}
}
