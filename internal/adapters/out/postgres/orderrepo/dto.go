// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored as their snake_case strings so operators can read rows
// directly; amounts are integer cents.
type OrderDTO struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	OrderType       string `gorm:"type:varchar(16);index"`
	Status          string `gorm:"type:varchar(32);index"`
	TableNumber     *int
	CustomerName    string `gorm:"type:varchar(255)"`
	CustomerPhone   string `gorm:"type:varchar(32)"`
	DeliveryAddress string
	Notes           string
	RiderID         *int64 `gorm:"index"`
	TotalAmount     int64
	PaymentStatus   string `gorm:"type:varchar(16)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time

	Items    []ItemDTO    `gorm:"foreignKey:OrderID"`
	Payments []PaymentDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Unit prices are snapshots taken at
// ordering time.
type ItemDTO struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	OrderID     int64 `gorm:"index"`
	MenuItemID  int64
	VariantID   *int64
	DisplayName string `gorm:"type:varchar(255)"`
	Quantity    int
	UnitPrice   int64
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// PaymentDTO represents one payment transaction attached to an order at
// creation time.
type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID int64     `gorm:"index"`
	Method  string    `gorm:"type:varchar(16)"`
	Amount  int64
}

// TableName specifies the database table name for payment transactions.
func (PaymentDTO) TableName() string {
	return "order_payments"
}

// fromDomain converts an order aggregate to its database representation,
// including its item and payment rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:          item.ID(),
			OrderID:     aggregate.ID(),
			MenuItemID:  item.MenuItemID(),
			VariantID:   item.VariantID(),
			DisplayName: item.DisplayName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Cents(),
		})
	}

	payments := make([]PaymentDTO, 0, len(aggregate.Payments()))
	for _, payment := range aggregate.Payments() {
		payments = append(payments, PaymentDTO{
			ID:      payment.ID(),
			OrderID: aggregate.ID(),
			Method:  payment.Method().String(),
			Amount:  payment.Amount().Cents(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID(),
		OrderType:       aggregate.Type().String(),
		Status:          aggregate.Status().String(),
		TableNumber:     aggregate.TableNumber(),
		CustomerName:    aggregate.CustomerName(),
		CustomerPhone:   aggregate.CustomerPhone(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Notes:           aggregate.Notes(),
		RiderID:         aggregate.Rider(),
		TotalAmount:     aggregate.TotalAmount().Cents(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		CompletedAt:     aggregate.CompletedAt(),
		Items:           items,
		Payments:        payments,
	}
}

// toDomain converts a database row (with its items and payments) back to an
// order aggregate using RestoreOrder, which re-validates the cross-field
// invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, err := kernel.NewMoneyFromCents(itemDTO.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := order.RestoreItem(itemDTO.ID, itemDTO.MenuItemID, itemDTO.VariantID,
			itemDTO.DisplayName, itemDTO.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	payments := make([]*order.PaymentTransaction, 0, len(dto.Payments))
	for _, paymentDTO := range dto.Payments {
		method, err := order.ParsePaymentMethod(paymentDTO.Method)
		if err != nil {
			return nil, err
		}
		amount, err := kernel.NewMoneyFromCents(paymentDTO.Amount)
		if err != nil {
			return nil, err
		}
		payment, err := order.RestorePaymentTransaction(paymentDTO.ID, method, amount)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	orderType, err := order.ParseOrderType(dto.OrderType)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	draft := order.Draft{
		TableNumber:     dto.TableNumber,
		CustomerName:    dto.CustomerName,
		CustomerPhone:   dto.CustomerPhone,
		DeliveryAddress: dto.DeliveryAddress,
		Notes:           dto.Notes,
	}

	return order.RestoreOrder(dto.ID, orderType, status, draft, dto.RiderID, paymentStatus,
		items, payments, dto.CreatedAt, dto.UpdatedAt, dto.CompletedAt)
}
