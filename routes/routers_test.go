package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelpms/constants"
	"hotelpms/controllers"
	"hotelpms/middleware"
	"hotelpms/models"
	"hotelpms/policy"
	"hotelpms/services"
	"hotelpms/services/logger"
	"hotelpms/services/notification"
	"hotelpms/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret"

type testServer struct {
	router *gin.Engine
	store  *store.MemoryStore
	room   models.Room
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	st := store.NewMemoryStore()

	rt := models.RoomType{Name: "Deluxe", Price: 1000, Capacity: 2}
	require.NoError(t, st.CreateRoomType(ctx, &rt))
	room := models.Room{RoomNumber: "101", RoomTypeID: rt.ID, Status: constants.RoomStatusAvailable}
	require.NoError(t, st.CreateRoom(ctx, &room))

	log := logger.NewNopLogger()
	clock := services.FixedClock{Time: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	notifier := notification.MultiService{}
	pricing := services.NewPricingEngine(st, services.PricingOptions{})
	facade, err := services.NewBookingFacade(services.BookingFacadeOptions{
		Store:    st,
		Logger:   log,
		Clock:    clock,
		Pricing:  pricing,
		Billing:  services.NewBillingService(st, pricing, clock, log),
		Notifier: notifier,
	})
	require.NoError(t, err)

	router := gin.New()
	auth := middleware.NewAuthenticator(testSecret, policy.NewStaticChecker(policy.DefaultRules()))
	SetupRoutes(router, auth, Controllers{
		Inventory: controllers.NewInventoryController(
			services.NewInventoryService(st, services.NopCache{}, notifier, clock, log),
			services.NewAvailabilityChecker(st),
		),
		Offers:       controllers.NewOfferController(services.NewOfferService(st)),
		Guests:       controllers.NewGuestController(services.NewGuestService(st)),
		Reservations: controllers.NewReservationController(controllers.ReservationControllerOptions{Facade: facade, Logger: log}),
	})
	return &testServer{router: router, store: st, room: room}
}

func token(t *testing.T, actor, role string) string {
	t.Helper()
	tok, err := services.IssueActorToken(actor, role, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *testServer) do(t *testing.T, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) bookingBody() map[string]any {
	return map[string]any{
		"rooms":               []map[string]any{{"room_id": s.room.ID}},
		"check_in_date_time":  "2026-03-11T14:00:00Z",
		"check_out_date_time": "2026-03-13T12:00:00Z",
		"guests": []map[string]any{
			{"first_name": "Lan", "last_name": "Nguyen", "email": "lan@example.com", "phone": "0901000001"},
		},
	}
}

type envelope struct {
	Code      int             `json:"code"`
	ErrorCode string          `json:"errorCode"`
	Data      json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v2/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationRoutes_Auth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/reservations", "", s.bookingBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/reservations", "Bearer not-a-token", s.bookingBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/reservations", token(t, "hk-1", policy.RoleHousekeeping), s.bookingBody())
	assert.Equal(t, http.StatusForbidden, w.Code)

	// housekeeping vẫn được xem phòng
	w = s.do(t, http.MethodGet, "/api/v1/rooms", token(t, "hk-1", policy.RoleHousekeeping), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReservationRoutes_BookAndCheckout(t *testing.T) {
	s := newTestServer(t)
	desk := token(t, "clerk-1", policy.RoleFrontDesk)

	w := s.do(t, http.MethodPost, "/api/v1/reservations", desk, s.bookingBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Reservation
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Equal(t, constants.BookingStatusBooked, created.BookingStatus)
	assert.Equal(t, 2360.0, created.TotalAmount)
	assert.Len(t, created.BookingReference, 6)

	// cùng phòng cùng ngày
	w = s.do(t, http.MethodPost, "/api/v1/reservations", desk, s.bookingBody())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ROOM_UNAVAILABLE", decode(t, w).ErrorCode)

	path := fmt.Sprintf("/api/v1/reservations/%d", created.ID)
	w = s.do(t, http.MethodGet, path, desk, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, path+"/checkout", desk, map[string]any{
		"payment_method": constants.PaymentMethodCash,
		"payment_amount": 2360,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.Equal(t, constants.BookingStatusCheckOut, result.Reservation.BookingStatus)
	assert.Zero(t, result.Balance)
	assert.Equal(t, constants.InvoiceStatusPaid, result.Invoice.Status)

	w = s.do(t, http.MethodGet, path+"/logs", desk, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReservationRoutes_BadID(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/reservations/abc", token(t, "clerk-1", policy.RoleFrontDesk), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/reservations/999", token(t, "clerk-1", policy.RoleFrontDesk), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
