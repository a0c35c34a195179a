package routes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"salonbook-backend/models"
	"salonbook-backend/payments"
)

type noopPayments struct{}

func (noopPayments) CreateCheckout(req payments.CheckoutRequest) (*payments.Checkout, error) {
	return &payments.Checkout{ID: "ch_test", CheckoutURL: "https://pay.example/ch_test"}, nil
}

func (noopPayments) VerifySignature(payload []byte, signature string) bool { return false }

type noopNotifier struct{}

func (noopNotifier) NotifyGroupPaid(group *models.BookingGroup) {}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return SetupRouter(Deps{
		DB:       db,
		Payments: noopPayments{},
		Verifier: noopPayments{},
		Notifier: noopNotifier{},
	})
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	r := testRouter(t)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/payments/webhook",
		"GET /api/salons",
		"GET /api/salons/:id/services",
		"POST /api/reservations",
		"GET /api/reservations/available/:salonId/:day/:month",
		"POST /api/reviews/:id",
		"POST /api/coupons/apply",
		"GET /api/points/:salonId",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestProtectedRoutesRejectAnonymousCallers(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/api/reservations", "/api/salons", "/api/coupons"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestWebhookRouteIsPublic(t *testing.T) {
	r := testRouter(t)

	// no cookie needed; a missing signature is the webhook's own 400
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
