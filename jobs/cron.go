package jobs

import (
	"context"
	"errors"
	"time"

	"hotelpms/services/logger"

	"github.com/robfig/cron/v3"
)

// ArrivalsMarker chuyển phòng của các đặt phòng đến hôm nay sang occupied
type ArrivalsMarker interface {
	MarkArrivals(ctx context.Context) (int, error)
}

var arrivalsMarker ArrivalsMarker

// SetArrivalsMarker thiết lập implementation cho ArrivalsMarker
func SetArrivalsMarker(marker ArrivalsMarker) {
	arrivalsMarker = marker
}

const jobTimeout = 2 * time.Minute

// InitCronJobs đăng ký job đánh dấu khách đến theo lịch spec rồi khởi động cron
func InitCronJobs(c *cron.Cron, spec string, log logger.Logger) error {
	if arrivalsMarker == nil {
		return errors.New("arrivals marker is not set")
	}

	_, err := c.AddFunc(spec, func() {
		runArrivals(arrivalsMarker, log)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}

func runArrivals(marker ArrivalsMarker, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := marker.MarkArrivals(ctx)
	if err != nil {
		log.Error("Lỗi khi cập nhật phòng cho khách đến hôm nay: %v", err)
		return
	}
	log.Info("Đã chuyển %d phòng sang occupied", n)
}
