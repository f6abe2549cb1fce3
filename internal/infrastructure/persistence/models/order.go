package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tommyfx/storefront/internal/domain/order"
	"github.com/tommyfx/storefront/internal/domain/shared"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	UserID          *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null"`
	ShippingTier    string          `gorm:"type:varchar(20);not null"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	CustomerEmail   string          `gorm:"type:varchar(254);not null"`
	Phone           string          `gorm:"type:varchar(40);not null"`
	ShippingAddress string          `gorm:"type:varchar(500);not null"`
	ShippingCity    string          `gorm:"type:varchar(100);not null"`
	ShippingState   string          `gorm:"type:varchar(100);not null"`
	ShippingZip     string          `gorm:"type:varchar(20);not null"`
	ShippingCountry string          `gorm:"type:varchar(100);not null"`
	// Associations
	Items []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
		},
		UserID:          m.UserID,
		Subtotal:        m.Subtotal,
		ShippingCost:    m.ShippingCost,
		TotalAmount:     m.TotalAmount,
		Status:          order.Status(m.Status),
		PaymentMethod:   m.PaymentMethod,
		ShippingTier:    order.ShippingTier(m.ShippingTier),
		CustomerName:    m.CustomerName,
		CustomerEmail:   m.CustomerEmail,
		Phone:           m.Phone,
		ShippingAddress: m.ShippingAddress,
		ShippingCity:    m.ShippingCity,
		ShippingState:   m.ShippingState,
		ShippingZip:     m.ShippingZip,
		ShippingCountry: m.ShippingCountry,
		Items:           make([]order.Item, len(m.Items)),
	}
	for i, item := range m.Items {
		o.Items[i] = *item.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.Subtotal = o.Subtotal
	m.ShippingCost = o.ShippingCost
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status.String()
	m.PaymentMethod = o.PaymentMethod
	m.ShippingTier = o.ShippingTier.String()
	m.CustomerName = o.CustomerName
	m.CustomerEmail = o.CustomerEmail
	m.Phone = o.Phone
	m.ShippingAddress = o.ShippingAddress
	m.ShippingCity = o.ShippingCity
	m.ShippingState = o.ShippingState
	m.ShippingZip = o.ShippingZip
	m.ShippingCountry = o.ShippingCountry
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for the order Item entity.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain order Item.
func (m *OrderItemModel) ToDomain() *order.Item {
	return &order.Item{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain Item.
func OrderItemModelFromDomain(i *order.Item) *OrderItemModel {
	return &OrderItemModel{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		CreatedAt:   i.CreatedAt,
	}
}
