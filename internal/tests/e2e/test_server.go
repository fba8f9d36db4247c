package e2e

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sritek/hospital-ops-sub000/domain"
	httpx "github.com/sritek/hospital-ops-sub000/internal/http"
	"github.com/sritek/hospital-ops-sub000/internal/http/handlers"
	"github.com/sritek/hospital-ops-sub000/internal/http/middleware"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/audit"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/auth"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/repositories"
	"github.com/sritek/hospital-ops-sub000/internal/services"
)

// Knobs shared by every end-to-end server. Lockout and OTP limits match
// the service defaults so the flows exercised here behave like production.
const (
	testJWTSecret    = "e2e-signing-secret-thats-long-enough-to-pass"
	testAccessTTL    = "900s"
	testOtpLength    = 6
	testMaxFailures  = 5
	testResendWindow = 60 * time.Second
)

// TestServer runs the full HTTP stack against in-memory storage: SQLite
// for relational state, miniredis for pending codes, a recorder instead
// of the SMS gateway. No external services are needed.
type TestServer struct {
	Server   *httptest.Server
	BaseURL  string
	Client   *http.Client
	DB       *gorm.DB
	Redis    *miniredis.Miniredis
	SMS      *SMSRecorder
	Hasher   domain.PasswordHasher
	TokenSvc domain.TokenService
}

// NewTestServer builds the wired service and starts serving it
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(
		&repositories.DBTenant{},
		&repositories.DBBranch{},
		&repositories.DBUser{},
		&repositories.DBBranchMembership{},
		&repositories.DBRefreshToken{},
		&repositories.DBLoginAttempt{},
		&repositories.DBPasswordHistory{},
	); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	userRepo := repositories.NewUserRepository(db)
	tenantRepo := repositories.NewTenantRepository(db)
	refreshRepo := repositories.NewRefreshTokenRepository(db)
	historyRepo := repositories.NewPasswordHistoryRepository(db)
	attemptRepo := repositories.NewLoginAttemptRepository(db)
	otpRepo := repositories.NewOtpRepository(rdb, 10*time.Minute, testResendWindow)

	// MinCost keeps the many registrations and logins in this suite fast.
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	policy := services.NewPasswordPolicy(8, hasher)
	tokenSvc := auth.NewJWTService(testJWTSecret, "identity-e2e", testAccessTTL)

	permissions, err := services.NewPermissionService()
	if err != nil {
		t.Fatalf("failed to build permission table: %v", err)
	}

	dispatcher := audit.NewDispatcher(nil, 0, logger)
	t.Cleanup(dispatcher.Close)

	sms := NewSMSRecorder()
	otpSvc := services.NewOtpService(otpRepo, sms, logger, services.OtpConfig{
		Length:      testOtpLength,
		TTL:         10 * time.Minute,
		MaxAttempts: 3,
	})

	authSvc := services.NewAuthService(
		userRepo,
		tenantRepo,
		refreshRepo,
		historyRepo,
		attemptRepo,
		hasher,
		policy,
		tokenSvc,
		otpSvc,
		permissions,
		dispatcher,
		logger,
		services.AuthConfig{
			MaxLoginFailures: testMaxFailures,
			LockoutDuration:  30 * time.Minute,
			PasswordHistory:  5,
			RefreshTTL:       168 * time.Hour,
		},
	)

	router := httpx.BuildRouter(
		handlers.NewAuthHandlers(authSvc),
		middleware.NewAuthMW(tokenSvc),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		BaseURL:  server.URL,
		Client:   &http.Client{Timeout: 10 * time.Second},
		DB:       db,
		Redis:    mr,
		SMS:      sms,
		Hasher:   hasher,
		TokenSvc: tokenSvc,
	}
}

// SMSRecorder implements domain.NotificationService and keeps every
// message so tests can read delivered verification codes.
type SMSRecorder struct {
	mu       sync.Mutex
	Messages []SentSMS
}

// SentSMS is one recorded outbound message
type SentSMS struct {
	To   string
	Body string
}

// NewSMSRecorder creates an empty recorder
func NewSMSRecorder() *SMSRecorder {
	return &SMSRecorder{}
}

// SendSMS implements domain.NotificationService
func (r *SMSRecorder) SendSMS(to, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, SentSMS{To: to, Body: message})
	return nil
}

// Count returns how many messages were sent
func (r *SMSRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Messages)
}

var codePattern = regexp.MustCompile(`\d{6}`)

// LastCode extracts the verification code from the most recent message
func (r *SMSRecorder) LastCode(t *testing.T) string {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		t.Fatal("no SMS was sent")
	}
	code := codePattern.FindString(r.Messages[len(r.Messages)-1].Body)
	if code == "" {
		t.Fatalf("no code found in message %q", r.Messages[len(r.Messages)-1].Body)
	}
	return code
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*SMSRecorder)(nil)
