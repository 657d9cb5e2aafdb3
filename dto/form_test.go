package dto

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFormKeys(t *testing.T) {
	values := url.Values{
		"guests[0][first_name]": {"Lan"},
		"guests[1][email]":      {"minh@example.com"},
		"package_ids[1]":        {"7"},
		"package_ids[0]":        {"5"},
		"tags[]":                {"a", "b"},
		"remarks":               {"quiet room"},
	}

	out := NormalizeFormKeys(values)

	assert.Equal(t, []string{"Lan"}, out["guests.0.first_name"])
	assert.Equal(t, []string{"minh@example.com"}, out["guests.1.email"])
	assert.Equal(t, []string{"5", "7"}, out["package_ids"])
	assert.Equal(t, []string{"a", "b"}, out["tags"])
	assert.Equal(t, []string{"quiet room"}, out["remarks"])
}

func TestDecodeReservationForm(t *testing.T) {
	values := url.Values{
		"rooms[0][room_id]":      {"3"},
		"rooms[1][room_id]":      {"4"},
		"check_in_date_time":     {"2026-03-11T14:00"},
		"check_out_date_time":    {"2026-03-13T12:00:00Z"},
		"guests[0][first_name]":  {"Lan"},
		"guests[0][email]":       {"lan@example.com"},
		"guests[1][first_name]":  {"Minh"},
		"package_ids[]":          {"1", "2"},
		"extra_bed":              {"1"},
		"unknown_field":          {"ignored"},
		"guests[0][nationality]": {"VN"},
	}

	req, err := DecodeReservationForm(values)
	require.NoError(t, err)

	assert.Equal(t, []uint{3, 4}, req.RoomIDs())
	assert.True(t, req.CheckIn.Equal(time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)))
	assert.True(t, req.CheckOut.Equal(time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)))
	require.Len(t, req.Guests, 2)
	assert.Equal(t, "Lan", req.Guests[0].FirstName)
	assert.Equal(t, "VN", req.Guests[0].Nationality)
	assert.Equal(t, "Minh", req.Guests[1].FirstName)
	assert.Equal(t, []uint{1, 2}, req.PackageIDs)
	assert.Equal(t, 1, req.ExtraBed)
}

func TestParseFormTime(t *testing.T) {
	for _, v := range []string{"2026-03-11", "2026-03-11 14:00", "2026-03-11T14:00", "2026-03-11T14:00:00+07:00"} {
		_, err := ParseFormTime(v)
		assert.NoError(t, err, v)
	}
	_, err := ParseFormTime("11/03/2026")
	assert.Error(t, err)
}

func TestRoomIDsDeduplicates(t *testing.T) {
	req := PriceRequest{Rooms: []RoomRef{{RoomID: 2}, {RoomID: 1}, {RoomID: 2}}}
	assert.Equal(t, []uint{2, 1}, req.RoomIDs())
}
