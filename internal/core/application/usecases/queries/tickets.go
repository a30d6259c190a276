// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read the store directly with raw SQL, bypassing the
// aggregates: projections need no invariants, only a consistent snapshot.
package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// loadBoardTickets reads the order rows the kitchen board cares about: every
// order in an active kitchen status, plus orders completed since the start of
// today. Cancelled orders and orders on the way are filtered in SQL so the
// projector never sees them.
func loadBoardTickets(ctx context.Context, db *gorm.DB, now time.Time) ([]services.Ticket, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_type,
			o.status,
			o.table_number,
			o.customer_name,
			o.total_amount,
			o.created_at,
			o.completed_at,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count
		FROM orders o
		WHERE o.status IN (?, ?, ?, ?, ?)
		   OR (o.status IN (?, ?, ?) AND o.completed_at >= ?)
		ORDER BY o.created_at
	`,
		order.Ordered.String(), order.UnderPreparation.String(),
		order.ReadyToCollect.String(), order.ReadyToServe.String(), order.ReadyForPickup.String(),
		order.Delivered.String(), order.Completed.String(), order.Collected.String(),
		startOfDay,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]services.Ticket, 0)
	for rows.Next() {
		var (
			ticket      services.Ticket
			orderType   string
			status      string
			totalAmount int64
		)

		if err = rows.Scan(
			&ticket.OrderID,
			&orderType,
			&status,
			&ticket.TableNumber,
			&ticket.CustomerName,
			&totalAmount,
			&ticket.CreatedAt,
			&ticket.CompletedAt,
			&ticket.ItemCount,
		); err != nil {
			return nil, err
		}

		if ticket.OrderType, err = order.ParseOrderType(orderType); err != nil {
			return nil, err
		}
		if ticket.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if ticket.TotalAmount, err = kernel.NewMoneyFromCents(totalAmount); err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
