package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"hotelpms/constants"
	"hotelpms/models"
	"hotelpms/services"
	"hotelpms/services/logger"
	"hotelpms/services/notification"
	"hotelpms/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu       sync.Mutex
	uploaded []string
	removed  []string
}

func (u *fakeUploader) Upload(_ context.Context, file io.Reader, filename string) (string, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	url := fmt.Sprintf("https://files.test/upload/v1/guest-documents/%s", filename)
	u.uploaded = append(u.uploaded, url)
	return url, nil
}

func (u *fakeUploader) Remove(_ context.Context, fileURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.removed = append(u.removed, fileURL)
	return nil
}

func newReservationRouter(t *testing.T, up services.AttachmentUploader) (*gin.Engine, models.Room) {
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
	pricing := services.NewPricingEngine(st, services.PricingOptions{})
	facade, err := services.NewBookingFacade(services.BookingFacadeOptions{
		Store:    st,
		Logger:   log,
		Clock:    clock,
		Pricing:  pricing,
		Billing:  services.NewBillingService(st, pricing, clock, log),
		Notifier: notification.MultiService{},
	})
	require.NoError(t, err)

	rc := NewReservationController(ReservationControllerOptions{Facade: facade, Uploader: up, Logger: log})
	router := gin.New()
	router.POST("/reservations", rc.CreateReservation)
	return router, room
}

func multipartBooking(t *testing.T, roomID uint) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"rooms[0][room_id]":     fmt.Sprint(roomID),
		"check_in_date_time":    "2026-03-11T14:00",
		"check_out_date_time":   "2026-03-13T12:00",
		"guests[0][first_name]": "Lan",
		"guests[0][email]":      "lan@example.com",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, name := range []string{"passport.jpg", "visa.jpg"} {
		part, err := w.CreateFormFile("attachments", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("scan"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateReservation_FailedBookingRemovesAttachments(t *testing.T) {
	up := &fakeUploader{}
	router, room := newReservationRouter(t, up)

	body, contentType := multipartBooking(t, room.ID+100)
	req := httptest.NewRequest(http.MethodPost, "/reservations", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	require.Len(t, up.uploaded, 2)
	assert.ElementsMatch(t, up.uploaded, up.removed)
}

func TestCreateReservation_KeepsAttachmentsOnSuccess(t *testing.T) {
	up := &fakeUploader{}
	router, room := newReservationRouter(t, up)

	body, contentType := multipartBooking(t, room.ID)
	req := httptest.NewRequest(http.MethodPost, "/reservations", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, up.uploaded, 2)
	assert.Empty(t, up.removed)
}
