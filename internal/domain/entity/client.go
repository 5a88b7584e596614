package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a store customer who can buy on installments
type Client struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null;index" json:"name"`
	CPF        *string        `gorm:"size:14;index;column:cpf" json:"cpf,omitempty"`
	RG         *string        `gorm:"size:20;column:rg" json:"rg,omitempty"`
	Email      *string        `gorm:"size:255" json:"email,omitempty"`
	Phone      *string        `gorm:"size:50" json:"phone,omitempty"`
	Occupation *string        `gorm:"size:100" json:"occupation,omitempty"`
	BirthDate  *time.Time     `gorm:"type:date" json:"birth_date,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	Notes      *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
