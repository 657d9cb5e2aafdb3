package services

import "time"

// Clock nguồn thời gian hiện tại, thay được trong test
type Clock interface {
	Now() time.Time
}

// SystemClock đồng hồ hệ thống theo múi giờ khách sạn
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock luôn trả về cùng một thời điểm
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// startOfDay 00:00 cùng ngày, giữ nguyên múi giờ của t
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateOnly ngày lịch của t (theo múi giờ của t) biểu diễn ở UTC, dùng để so sánh ngày
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b.In(a.Location())))
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
