package services

import (
	"errors"
	"testing"

	"hotelpms/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceGenerator_Next(t *testing.T) {
	f := newHotelFixture(t)
	gen, err := NewReferenceGenerator(5, 1)
	require.NoError(t, err)

	ref, err := gen.Next(f.ctx, f.store)
	require.NoError(t, err)
	assert.Len(t, ref, constants.BookingReferenceLength)
	assert.Regexp(t, `^\d{6}$`, ref)
}

func TestReferenceGenerator_FallsBackToSnowflake(t *testing.T) {
	f := newHotelFixture(t)
	f.seedReservation(t, "123456", constants.BookingStatusBooked, day(11, 14), day(13, 12), "101")

	gen, err := NewReferenceGenerator(3, 1)
	require.NoError(t, err)
	calls := 0
	gen.random = func() (string, error) {
		calls++
		return "123456", nil
	}

	ref, err := gen.Next(f.ctx, f.store)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.NotEqual(t, "123456", ref)
	assert.Greater(t, len(ref), constants.BookingReferenceLength)
}

func TestReferenceGenerator_RandomFailure(t *testing.T) {
	f := newHotelFixture(t)
	gen, err := NewReferenceGenerator(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 20, gen.maxAttempts)

	gen.random = func() (string, error) { return "", errors.New("entropy exhausted") }
	_, err = gen.Next(f.ctx, f.store)
	require.Error(t, err)
}

func TestNewReferenceGenerator_InvalidNode(t *testing.T) {
	_, err := NewReferenceGenerator(1, 5000)
	assert.Error(t, err)
}
