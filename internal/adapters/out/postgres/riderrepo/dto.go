// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence.
package riderrepo

import (
	"fulfillment/internal/core/domain/model/rider"
)

// RiderDTO represents the database structure for persisting riders.
type RiderDTO struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	Name   string `gorm:"type:varchar(255)"`
	Phone  string `gorm:"type:varchar(32)"`
	Active bool   `gorm:"index"`
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:     aggregate.ID(),
		Name:   aggregate.Name(),
		Phone:  aggregate.Phone(),
		Active: aggregate.IsActive(),
	}
}

// toDomain converts a database row back to a rider aggregate.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	return rider.RestoreRider(dto.ID, dto.Name, dto.Phone, dto.Active)
}
