package models

import (
	"time"
)

// Invoice ảnh chụp tổng tiền của Folio tại thời điểm xuất
type Invoice struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	InvoiceNumber string     `json:"invoice_number" gorm:"uniqueIndex;size:40;not null"`
	FolioID       uint       `json:"folio_id" gorm:"index;not null"`
	ReservationID uint       `json:"reservation_id" gorm:"index;not null"`
	Subtotal      float64    `json:"subtotal"`
	TaxAmount     float64    `json:"tax_amount"`
	TotalAmount   float64    `json:"total_amount"`
	PaidAmount    float64    `json:"paid_amount"`
	Status        string     `json:"status" gorm:"size:20"` // unpaid | partial | paid
	IssuedAt      time.Time  `json:"issued_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type Payment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	InvoiceID       uint      `json:"invoice_id" gorm:"index;not null"`
	FolioID         uint      `json:"folio_id" gorm:"index;not null"`
	ReservationID   uint      `json:"reservation_id" gorm:"index;not null"`
	PaymentMethod   string    `json:"payment_method" gorm:"size:20;not null"`
	Amount          float64   `json:"amount"`
	TransactionID   string    `json:"transaction_id"`
	ReferenceNumber string    `json:"reference_number"`
	Notes           string    `json:"notes"`
	ReceivedBy      string    `json:"received_by"`
	PaidAt          time.Time `json:"paid_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
