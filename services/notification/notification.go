package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
	"github.com/segmentio/kafka-go"
)

// Loại sự kiện gửi ra ngoài
const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventRoomReassigned       = "reservation.room_reassigned"
	EventReservationCheckedIn = "reservation.checked_in"
	EventReservationCheckout  = "reservation.checked_out"
	EventReservationCancelled = "reservation.cancelled"
	EventPaymentRecorded      = "payment.recorded"
	EventRoomStatusChanged    = "room.status_changed"
)

// Event sự kiện nghiệp vụ
type Event struct {
	Type             string      `json:"type"`
	ReservationID    uint        `json:"reservation_id,omitempty"`
	BookingReference string      `json:"booking_reference,omitempty"`
	RoomIDs          []uint      `json:"room_ids,omitempty"`
	Message          string      `json:"message"`
	Data             interface{} `json:"data,omitempty"`
	OccurredAt       time.Time   `json:"occurred_at"`
}

// Key khóa phân vùng: cùng reservation thì cùng partition
func (e Event) Key() string {
	if e.ReservationID != 0 {
		return strconv.FormatUint(uint64(e.ReservationID), 10)
	}
	return e.Type
}

type Service interface {
	Send(ctx context.Context, event Event) error
}

// MelodyService đẩy sự kiện tới mọi client websocket đang kết nối
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Send(ctx context.Context, event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.m.Broadcast(payload)
}

// KafkaService ghi sự kiện lên topic Kafka
type KafkaService struct {
	w *kafka.Writer
}

func NewKafkaService(brokers []string, topic string) *KafkaService {
	return &KafkaService{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (s *KafkaService) Send(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
}

func (s *KafkaService) Close() error {
	return s.w.Close()
}

// MultiService gửi tới tất cả service con, gom lỗi lại
type MultiService []Service

func (m MultiService) Send(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NopService bỏ qua mọi sự kiện
type NopService struct{}

func (NopService) Send(ctx context.Context, event Event) error { return nil }

// MessageBuilder tạo Event kèm câu thông báo cho người đọc
type MessageBuilder struct {
	event Event
}

func NewMessageBuilder(eventType string, at time.Time) *MessageBuilder {
	return &MessageBuilder{event: Event{Type: eventType, OccurredAt: at}}
}

func (b *MessageBuilder) Reservation(id uint, reference string) *MessageBuilder {
	b.event.ReservationID = id
	b.event.BookingReference = reference
	return b
}

func (b *MessageBuilder) Rooms(ids []uint) *MessageBuilder {
	b.event.RoomIDs = ids
	return b
}

func (b *MessageBuilder) Data(data interface{}) *MessageBuilder {
	b.event.Data = data
	return b
}

func (b *MessageBuilder) Build() Event {
	b.event.Message = b.message()
	return b.event
}

func (b *MessageBuilder) message() string {
	ref := b.event.BookingReference
	switch b.event.Type {
	case EventReservationCreated:
		return fmt.Sprintf("🔔 Đặt phòng %s đã được tạo cho %d phòng.", ref, len(b.event.RoomIDs))
	case EventReservationUpdated:
		return fmt.Sprintf("Đặt phòng %s đã được cập nhật.", ref)
	case EventRoomReassigned:
		return fmt.Sprintf("Đặt phòng %s đã được đổi phòng.", ref)
	case EventReservationCheckedIn:
		return fmt.Sprintf("Khách của đặt phòng %s đã nhận phòng.", ref)
	case EventReservationCheckout:
		return fmt.Sprintf("Khách của đặt phòng %s đã trả phòng.", ref)
	case EventReservationCancelled:
		return fmt.Sprintf("Đặt phòng %s đã bị hủy.", ref)
	case EventPaymentRecorded:
		return fmt.Sprintf("Đã ghi nhận thanh toán cho đặt phòng %s.", ref)
	case EventRoomStatusChanged:
		return fmt.Sprintf("Phòng %v đã đổi trạng thái.", b.event.RoomIDs)
	default:
		return b.event.Type
	}
}
