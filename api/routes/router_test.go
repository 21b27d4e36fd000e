package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nearbuy-market/storefront-gateway/internal/auth"
	"github.com/nearbuy-market/storefront-gateway/internal/cart"
	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	"github.com/nearbuy-market/storefront-gateway/pkg/config"
)

// fakeMarketplace emulates just enough of the backend API for end to end
// routing tests: token auth, the current user, and a mutable cart.
type fakeMarketplace struct {
	mu    sync.Mutex
	items []map[string]any
	next  int64
}

func (f *fakeMarketplace) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token-auth/", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "hunter22" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"non_field_errors":["Unable to log in with provided credentials."]}`)
			return
		}
		fmt.Fprint(w, `{"token":"tok-router"}`)
	})
	mux.HandleFunc("GET /api/users/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok-router" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"id":1,"username":"maria","user_type":"consumer"}`)
	})
	mux.HandleFunc("GET /api/cart-items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok-router" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		payload := map[string]any{"count": len(f.items), "next": nil, "previous": nil, "results": f.items}
		json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("POST /api/cart-items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok-router" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			ProductID int64 `json:"product_id"`
			Quantity  int   `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.next++
		item := map[string]any{"id": f.next, "product": body.ProductID, "quantity": body.Quantity, "user": 1}
		f.items = append(f.items, item)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(item)
	})
	mux.HandleFunc("GET /api/categories/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"count":0,"next":null,"previous":null,"results":[]}`)
	})
	return mux
}

func newTestRouter(t *testing.T, backendURL string) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		Session: config.SessionConfig{
			Backend:    config.SessionBackendMemory,
			CookieName: "nearbuy_session",
			TokenTTL:   time.Hour,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	client, err := upstream.New(config.UpstreamConfig{BaseURL: backendURL, Timeout: 5 * time.Second}, nil)
	if err != nil {
		t.Fatalf("upstream.New: %v", err)
	}

	sessions := session.NewMemoryStore()
	cartSvc, err := cart.NewService(client, sessions, nil)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	authSvc, err := auth.NewService(auth.ServiceParams{
		Backend:  client,
		Sessions: sessions,
		Observer: cartSvc,
	})
	if err != nil {
		t.Fatalf("auth.NewService: %v", err)
	}

	return NewRouter(RouterParams{
		Config:      cfg,
		Backend:     client,
		Sessions:    sessions,
		AuthService: authSvc,
		CartService: cartSvc,
	})
}

func TestRouterLoginThenCartFlow(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer((&fakeMarketplace{}).handler())
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	login := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"maria","password":"hunter22"}`))
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, login)
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login status = %d body = %s", loginRec.Code, loginRec.Body.String())
	}

	cookies := loginRec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %+v", cookies)
	}
	sessionCookie := cookies[0]

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":42,"quantity":2}`))
	add.AddCookie(sessionCookie)
	addRec := httptest.NewRecorder()
	router.ServeHTTP(addRec, add)
	if addRec.Code != http.StatusOK {
		t.Fatalf("add status = %d body = %s", addRec.Code, addRec.Body.String())
	}

	count := httptest.NewRequest(http.MethodGet, "/api/v1/cart/count", nil)
	count.AddCookie(sessionCookie)
	countRec := httptest.NewRecorder()
	router.ServeHTTP(countRec, count)
	if countRec.Code != http.StatusOK {
		t.Fatalf("count status = %d", countRec.Code)
	}
	var envelope struct {
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(countRec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["count"] != 2 {
		t.Fatalf("count = %d, want 2", envelope.Data["count"])
	}
}

func TestRouterCartRequiresLogin(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer((&fakeMarketplace{}).handler())
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":42,"quantity":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, add)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouterInvalidCredentials(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer((&fakeMarketplace{}).handler())
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	login := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"maria","password":"wrong"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, login)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouterHealthLive(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer((&fakeMarketplace{}).handler())
	defer backend.Close()
	router := newTestRouter(t, backend.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-NearBuy-Env") != config.AppEnvDev {
		t.Fatalf("env header = %q", rec.Header().Get("X-NearBuy-Env"))
	}
}
