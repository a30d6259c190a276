package services

import (
	"fmt"
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// defaultServedLimit bounds the served bucket to the most recent completions;
// the kitchen board is a glanceable display, not a history view.
const defaultServedLimit = 20

// Ticket is the read-side shape of one order as the kitchen board sees it.
// Tickets are produced by a storage query and carry only what the board
// renders.
type Ticket struct {
	OrderID      int64
	OrderType    order.OrderType
	Status       order.Status
	TableNumber  *int
	CustomerName string
	ItemCount    int
	TotalAmount  kernel.Money
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// BoardEntry is a ticket plus its display-ready elapsed time, derived at
// projection time.
type BoardEntry struct {
	Ticket
	Elapsed string
}

// Board is the four-bucket kitchen board projection.
type Board struct {
	New     []BoardEntry
	Process []BoardEntry
	Ready   []BoardEntry
	Served  []BoardEntry
}

// BoardCounts carries per-bucket counts for dashboard badges.
type BoardCounts struct {
	New     int
	Process int
	Ready   int
	Served  int
}

// KitchenBoardProjector derives the kitchen board from the live order set.
//
// Bucketing:
//   - new: status ordered
//   - process: status under_preparation
//   - ready: the three ready_* statuses
//   - served: done-terminal orders completed today
//
// Cancelled orders and orders on the way to the customer never appear: once
// a rider has the food, it is not a kitchen concern.
//
// The projection is a pure function of the ticket set and the current time.
// It holds no state and is recomputed on every call, including each ticket's
// elapsed time.
type KitchenBoardProjector struct {
	servedLimit int
}

// NewKitchenBoardProjector creates a projector. A non-positive servedLimit
// falls back to the default display bound.
func NewKitchenBoardProjector(servedLimit int) KitchenBoardProjector {
	if servedLimit <= 0 {
		servedLimit = defaultServedLimit
	}
	return KitchenBoardProjector{servedLimit: servedLimit}
}

// Project buckets the tickets into the board. The new, process and ready
// buckets are ordered oldest-created-first so the kitchen clears the
// longest-waiting ticket first; served is ordered most-recently-completed
// first and bounded to the projector's display limit.
func (p KitchenBoardProjector) Project(tickets []Ticket, now time.Time) Board {
	var board Board
	for _, ticket := range tickets {
		entry := BoardEntry{Ticket: ticket, Elapsed: formatElapsed(now.Sub(ticket.CreatedAt))}

		switch {
		case ticket.Status == order.Ordered:
			board.New = append(board.New, entry)
		case ticket.Status == order.UnderPreparation:
			board.Process = append(board.Process, entry)
		case ticket.Status.IsReady():
			board.Ready = append(board.Ready, entry)
		case p.servedToday(ticket, now):
			board.Served = append(board.Served, entry)
		}
	}

	sortOldestFirst(board.New)
	sortOldestFirst(board.Process)
	sortOldestFirst(board.Ready)

	sort.SliceStable(board.Served, func(i, j int) bool {
		return board.Served[i].CompletedAt.After(*board.Served[j].CompletedAt)
	})
	if len(board.Served) > p.servedLimit {
		board.Served = board.Served[:p.servedLimit]
	}

	return board
}

// Count applies the same bucketing and returns only the per-bucket counts.
// The served count is not subject to the display limit.
func (p KitchenBoardProjector) Count(tickets []Ticket, now time.Time) BoardCounts {
	var counts BoardCounts
	for _, ticket := range tickets {
		switch {
		case ticket.Status == order.Ordered:
			counts.New++
		case ticket.Status == order.UnderPreparation:
			counts.Process++
		case ticket.Status.IsReady():
			counts.Ready++
		case p.servedToday(ticket, now):
			counts.Served++
		}
	}
	return counts
}

func (KitchenBoardProjector) servedToday(ticket Ticket, now time.Time) bool {
	if !ticket.Status.IsDone() || ticket.CompletedAt == nil {
		return false
	}
	completed := ticket.CompletedAt.In(now.Location())
	return completed.Year() == now.Year() && completed.YearDay() == now.YearDay()
}

func sortOldestFirst(entries []BoardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

// formatElapsed renders a duration the way the board displays ticket age.
func formatElapsed(elapsed time.Duration) string {
	minutes := int(elapsed.Minutes())
	switch {
	case minutes <= 0:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
}
