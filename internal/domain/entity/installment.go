package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/enum"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/installment"
)

// Installment is one scheduled payment of a sale.
//
// StoredStatus is only ever pending or paid. The status exposed to clients
// is resolved against the current date on every read.
type Installment struct {
	ID                uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	SaleID            uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_installments_sale_number,priority:1" json:"sale_id"`
	ClientID          uuid.UUID              `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientName        string                 `gorm:"size:255;not null;index" json:"client_name"`
	InstallmentNumber int                    `gorm:"not null;uniqueIndex:idx_installments_sale_number,priority:2" json:"installment_number"`
	TotalInstallments int                    `gorm:"not null" json:"total_installments"`
	Value             decimal.Decimal        `gorm:"type:numeric(12,2);not null" json:"value"`
	DueDate           time.Time              `gorm:"type:date;not null;index" json:"due_date"`
	StoredStatus      enum.InstallmentStatus `gorm:"column:status;not null;default:0;index" json:"-"`
	PaymentDate       *time.Time             `gorm:"type:date" json:"payment_date,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`

	// Status is filled by Resolve and never persisted.
	Status enum.InstallmentStatus `gorm:"-" json:"status"`

	// Relationships
	Payments []Payment `gorm:"foreignKey:InstallmentID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new installment
func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// AfterFind resolves against the wall clock in UTC so a freshly loaded row
// never carries a zero status. Services call Resolve with the business date.
func (i *Installment) AfterFind(tx *gorm.DB) error {
	i.Resolve(installment.Today(time.Now(), time.UTC))
	return nil
}

// TableName returns the table name for the Installment model
func (Installment) TableName() string {
	return "installments"
}

// Resolve sets Status for the given business date.
func (i *Installment) Resolve(today time.Time) {
	i.Status = installment.ResolveStatus(i.StoredStatus, i.DueDate, today)
}

// IsPaid reports the stored state.
func (i *Installment) IsPaid() bool {
	return i.StoredStatus == enum.InstallmentStatusPaid
}

// NewInstallmentsFromPlan attaches a generated or validated plan to a sale.
func NewInstallmentsFromPlan(sale *Sale, plan []installment.Draft) []Installment {
	rows := make([]Installment, len(plan))
	for i, d := range plan {
		rows[i] = Installment{
			SaleID:            sale.ID,
			ClientID:          sale.ClientID,
			ClientName:        sale.ClientName,
			InstallmentNumber: d.Number,
			TotalInstallments: len(plan),
			Value:             d.Value,
			DueDate:           installment.Date(d.DueDate),
			StoredStatus:      enum.InstallmentStatusPending,
		}
	}
	return rows
}
