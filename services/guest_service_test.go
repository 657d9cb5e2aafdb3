package services

import (
	"testing"

	apperrors "hotelpms/errors"
	"hotelpms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGuests(t *testing.T, f *hotelFixture) []models.Guest {
	t.Helper()
	guests := []models.Guest{
		{FirstName: "Nguyễn Văn", LastName: "An", Email: "an@example.com"},
		{FirstName: "Trần Thị", LastName: "Bình", Email: "binh@example.com"},
		{FirstName: "Lê", LastName: "Hoàng", Phone: "0902000003"},
	}
	for i := range guests {
		require.NoError(t, f.store.CreateGuest(f.ctx, &guests[i]))
	}
	return guests
}

func TestSearchGuests(t *testing.T) {
	f := newHotelFixture(t)
	guests := seedGuests(t, f)
	svc := NewGuestService(f.store)

	t.Run("accent insensitive substring", func(t *testing.T) {
		res, err := svc.SearchGuests(f.ctx, "nguyen")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, guests[0].ID, res[0].ID)
		assert.Equal(t, 1.0, res[0].Score)
	})

	t.Run("upper case with diacritics", func(t *testing.T) {
		res, err := svc.SearchGuests(f.ctx, "TRẦN")
		require.NoError(t, err)
		require.NotEmpty(t, res)
		assert.Equal(t, guests[1].ID, res[0].ID)
	})

	t.Run("typo tolerated", func(t *testing.T) {
		res, err := svc.SearchGuests(f.ctx, "nguyn")
		require.NoError(t, err)
		require.NotEmpty(t, res)
		assert.Equal(t, guests[0].ID, res[0].ID)
		assert.GreaterOrEqual(t, res[0].Score, minNameSimilarity)
	})

	t.Run("blank query", func(t *testing.T) {
		_, err := svc.SearchGuests(f.ctx, "   ")
		requireCode(t, err, apperrors.ErrCodeRequiredField)
	})
}

func TestSearchGuests_Empty(t *testing.T) {
	f := newHotelFixture(t)
	res, err := NewGuestService(f.store).SearchGuests(f.ctx, "an")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestDeleteGuest(t *testing.T) {
	f := newHotelFixture(t)
	guests := seedGuests(t, f)
	svc := NewGuestService(f.store)

	require.NoError(t, svc.DeleteGuest(f.ctx, guests[0].ID))
	_, err := svc.GetGuest(f.ctx, guests[0].ID)
	requireCode(t, err, apperrors.ErrCodeNotFound)

	err = svc.DeleteGuest(f.ctx, guests[0].ID)
	requireCode(t, err, apperrors.ErrCodeNotFound)

	list, err := svc.ListGuests(f.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// email của khách đã xóa dùng lại được
	again := models.Guest{FirstName: "An", Email: "an@example.com"}
	require.NoError(t, f.store.CreateGuest(f.ctx, &again))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.Equal(t, 1.0, calculateSimilarity("binh", "binh"))
	assert.InDelta(t, 1.0-1.0/6.0, calculateSimilarity("nguyn", "nguyen"), 1e-9)
	assert.Less(t, calculateSimilarity("tran", "hoang"), minNameSimilarity)
	assert.Equal(t, "tran thi binh", normalizeInput("  Trần Thị Bình "))
}
