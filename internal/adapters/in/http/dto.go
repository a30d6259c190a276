package http

import (
	"time"

	"fulfillment/internal/core/domain/services"
)

// Request bodies.

type CreateOrderRequest struct {
	OrderType       string                `json:"order_type"`
	TableNumber     *int                  `json:"table_number,omitempty"`
	CustomerName    string                `json:"customer_name,omitempty"`
	CustomerPhone   string                `json:"customer_phone,omitempty"`
	DeliveryAddress string                `json:"delivery_address,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	Items           []CreateOrderItem     `json:"items"`
	Payments        []CreateOrderPayment  `json:"payments"`
	QuickPayMethod  string                `json:"quick_pay_method,omitempty"`
}

type CreateOrderItem struct {
	MenuItemID     int64  `json:"menu_item_id"`
	VariantID      *int64 `json:"variant_id,omitempty"`
	DisplayName    string `json:"display_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type CreateOrderPayment struct {
	Method      string `json:"method"`
	AmountCents int64  `json:"amount_cents"`
}

type TransitionOrderRequest struct {
	Action string `json:"action"`
}

type EditOrderItemRequest struct {
	Quantity int `json:"quantity"`
}

type CreateRiderRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Response bodies.

type OrderCreatedResponse struct {
	OrderID int64 `json:"order_id"`
}

type TransitionOrderResponse struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

type RiderCreatedResponse struct {
	RiderID int64 `json:"rider_id"`
}

type BoardTicketResponse struct {
	OrderID      int64     `json:"order_id"`
	OrderType    string    `json:"order_type"`
	Status       string    `json:"status"`
	TableNumber  *int      `json:"table_number,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	ItemCount    int       `json:"item_count"`
	TotalCents   int64     `json:"total_cents"`
	Elapsed      string    `json:"elapsed"`
	CreatedAt    time.Time `json:"created_at"`
}

type BoardCountsResponse struct {
	New     int `json:"new"`
	Process int `json:"process"`
	Ready   int `json:"ready"`
	Served  int `json:"served"`
}

type KitchenBoardResponse struct {
	New     []BoardTicketResponse `json:"new"`
	Process []BoardTicketResponse `json:"process"`
	Ready   []BoardTicketResponse `json:"ready"`
	Served  []BoardTicketResponse `json:"served"`
	Counts  BoardCountsResponse   `json:"counts"`
}

type ErrorResponse struct {
	Code          int    `json:"code"`
	Message       string `json:"message"`
	CurrentStatus string `json:"current_status,omitempty"`
}

func toBoardTickets(entries []services.BoardEntry) []BoardTicketResponse {
	tickets := make([]BoardTicketResponse, 0, len(entries))
	for _, entry := range entries {
		tickets = append(tickets, BoardTicketResponse{
			OrderID:      entry.OrderID,
			OrderType:    entry.OrderType.String(),
			Status:       entry.Status.String(),
			TableNumber:  entry.TableNumber,
			CustomerName: entry.CustomerName,
			ItemCount:    entry.ItemCount,
			TotalCents:   entry.TotalAmount.Cents(),
			Elapsed:      entry.Elapsed,
			CreatedAt:    entry.CreatedAt,
		})
	}
	return tickets
}

func toBoardCounts(counts services.BoardCounts) BoardCountsResponse {
	return BoardCountsResponse{
		New:     counts.New,
		Process: counts.Process,
		Ready:   counts.Ready,
		Served:  counts.Served,
	}
}
