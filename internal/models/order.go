package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the client-visible order workflow state.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// AcceptanceStatus tracks the assigned assembler's decision.
type AcceptanceStatus string

const (
	AcceptancePending  AcceptanceStatus = "Pending"
	AcceptanceAccepted AcceptanceStatus = "Accepted"
	AcceptanceRejected AcceptanceStatus = "Rejected"
)

// Order is a customer purchase request tracked from creation to completion
// or cancellation. Customer fields are a snapshot taken at order time, not a
// live reference.
type Order struct {
	BaseModel
	CustomerID              *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id"`
	CustomerName            string           `json:"customer_name"`
	CustomerPhone           string           `json:"customer_phone"`
	Status                  OrderStatus      `gorm:"type:varchar(16);index" json:"status"`
	AcceptanceStatus        AcceptanceStatus `gorm:"type:varchar(16)" json:"acceptance_status"`
	AssemblerID             *uuid.UUID       `gorm:"type:uuid;index" json:"assembler_id"`
	EstimatedCompletionDate *time.Time       `json:"estimated_completion_date"`
	TotalAmount             float64          `json:"total_amount"`
	Version                 int64            `json:"-"`
	Items                   []OrderItem      `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Comments                []OrderComment   `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// OrderItem is one line of an order with product data snapshotted at
// creation. Quantity never persists as zero; a line reaching zero is removed.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// OrderComment is an append-only remark on an order. Internal comments are
// hidden from the customer.
type OrderComment struct {
	BaseModel
	OrderID    uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	Author     string    `json:"author"`
	Text       string    `json:"text"`
	IsInternal bool      `json:"is_internal"`
}
