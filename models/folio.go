package models

import "time"

// Folio sổ cái chi phí của một lần lưu trú
type Folio struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	ReservationID uint          `json:"reservation_id" gorm:"index;not null"`
	Status        string        `json:"status" gorm:"size:20;not null"`
	TotalCharges  float64       `json:"total_charges"` // Tổng sau giảm giá, chưa thuế
	TotalTax      float64       `json:"total_tax"`
	TotalAmount   float64       `json:"total_amount"`
	TotalPayments float64       `json:"total_payments"`
	Balance       float64       `json:"balance"`
	ClosedAt      *time.Time    `json:"closed_at,omitempty"`
	ClosedBy      string        `json:"closed_by,omitempty"`
	Charges       []FolioCharge `json:"charges,omitempty" gorm:"foreignKey:FolioID"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

type FolioCharge struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FolioID     uint      `json:"folio_id" gorm:"index;not null"`
	Kind        string    `json:"kind" gorm:"size:20;not null"` // room | service | extra_bed
	Description string    `json:"description"`
	ReferenceID *uint     `json:"reference_id,omitempty"` // room id hoặc package id
	Amount      float64   `json:"amount"`
	Discount    float64   `json:"discount"`
	TaxRate     float64   `json:"tax_rate"`
	TaxAmount   float64   `json:"tax_amount"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
