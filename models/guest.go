package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Guest khách lưu trú. Email và phone là khóa nhận diện khi khử trùng lặp.
type Guest struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	FirstName   string         `json:"first_name" gorm:"size:100;not null"`
	LastName    string         `json:"last_name" gorm:"size:100"`
	Email       string         `json:"email" gorm:"size:255;index:idx_guests_email,unique,where:email <> '' AND deleted_at IS NULL"`
	Phone       string         `json:"phone" gorm:"size:32;index:idx_guests_phone,unique,where:phone <> '' AND deleted_at IS NULL"`
	Gender      string         `json:"gender"`
	DateOfBirth *time.Time     `json:"date_of_birth,omitempty"`
	Nationality string         `json:"nationality"`
	Detail      *GuestDetail   `json:"detail,omitempty" gorm:"foreignKey:GuestID"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (g *Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// GuestDetail địa chỉ và giấy tờ, quan hệ 1-1 với Guest
type GuestDetail struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	GuestID        uint      `json:"guest_id" gorm:"uniqueIndex;not null"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Country        string    `json:"country"`
	ZipCode        string    `json:"zip_code"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	DocumentURL    string    `json:"document_url"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
