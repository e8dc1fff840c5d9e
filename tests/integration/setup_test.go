package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"moneybook/internal/config"
	"moneybook/internal/handlers"
	"moneybook/internal/logger"
	"moneybook/internal/middleware"
	"moneybook/internal/models"
	"moneybook/internal/oauth"
	"moneybook/internal/services"
	"moneybook/internal/validator"
)

const testStateSecret = "integration-state-secret"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Kakao  *kakaoStub
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// kakaoStub plays the identity provider: it issues access tokens for known
// authorization codes and serves the profile bound to each code.
type kakaoStub struct {
	server *httptest.Server

	mu       sync.Mutex
	accounts map[string]kakaoAccount // authorization code -> account
}

type kakaoAccount struct {
	ID       int64
	Nickname string
}

func newKakaoStub(t *testing.T) *kakaoStub {
	t.Helper()
	stub := &kakaoStub{accounts: make(map[string]kakaoAccount)}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		code := r.FormValue("code")
		stub.mu.Lock()
		_, ok := stub.accounts[code]
		stub.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%s","token_type":"bearer","expires_in":3600}`, code)
	})
	mux.HandleFunc("/v2/user/me", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		code := strings.TrimPrefix(strings.TrimPrefix(auth, "Bearer "), "token-")
		stub.mu.Lock()
		account, ok := stub.accounts[code]
		stub.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%d,"properties":{"nickname":%q}}`, account.ID, account.Nickname)
	})

	stub.server = httptest.NewServer(mux)
	t.Cleanup(stub.server.Close)
	return stub
}

// grantCode registers an authorization code the stub will honour.
func (k *kakaoStub) grantCode(code string, id int64, nickname string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.accounts[code] = kakaoAccount{ID: id, Nickname: nickname}
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Session{},
		&models.Transaction{},
		&models.Asset{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database and a stub identity provider.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	kakao := newKakaoStub(t)

	provider := oauth.NewProvider(&config.Config{
		KakaoClientID:     "integration-client",
		KakaoClientSecret: "integration-secret",
		KakaoRedirectURI:  "http://localhost:8080/auth/kakao/callback",
		KakaoAuthURL:      kakao.server.URL + "/oauth/authorize",
		KakaoTokenURL:     kakao.server.URL + "/oauth/token",
		KakaoProfileURL:   kakao.server.URL + "/v2/user/me",
	})

	// Services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db, time.Hour)
	transactionService := services.NewTransactionService(db)
	assetService := services.NewAssetService(db)
	dataService := services.NewDataService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(
		userService, sessionService, provider, testStateSecret, 3600, false)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	assetHandler := handlers.NewAssetHandler(assetService)
	dataHandler := handlers.NewDataHandler(dataService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	sessionAuth := middleware.SessionAuth(sessionService)

	auth := router.Group("/auth/kakao")
	auth.GET("", authHandler.Login)
	auth.GET("/callback", authHandler.Callback)
	router.GET("/logout", authHandler.Logout)
	router.GET("/user", sessionAuth, authHandler.GetUser)

	api := router.Group("/api", sessionAuth)

	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	assets := api.Group("/assets")
	assets.GET("", assetHandler.ListAssets)
	assets.POST("", assetHandler.CreateAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	api.DELETE("/data", dataHandler.ResetData)

	return &testApp{DB: db, Router: router, Kakao: kakao}
}

// request makes an HTTP request to the test router. A non-empty session token
// is sent as the session cookie.
func (app *testApp) request(method, path, body, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session})
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// loginAs drives the whole browser login dance for a provider account and
// returns the session token the callback set.
func (app *testApp) loginAs(t *testing.T, kakaoID int64, nickname string) string {
	t.Helper()

	code := fmt.Sprintf("code-%d-%d", kakaoID, dbCounter.Add(1))
	app.Kakao.grantCode(code, kakaoID, nickname)

	// Consent redirect carries the signed state.
	rec := app.request("GET", "/auth/kakao", "", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("login redirect failed: %d %s", rec.Code, rec.Body.String())
	}
	consent, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("failed to parse consent URL: %v", err)
	}
	state := consent.Query().Get("state")
	if state == "" {
		t.Fatal("consent URL carries no state")
	}

	// Callback binds the session and sets the cookie.
	callback := fmt.Sprintf("/auth/kakao/callback?code=%s&state=%s",
		url.QueryEscape(code), url.QueryEscape(state))
	rec = app.request("GET", callback, "", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("callback failed: %d %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
			return cookie.Value
		}
	}
	t.Fatal("callback set no session cookie")
	return ""
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice of maps.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the machine-readable code from an error payload.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no error object: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
