package domain

import "time"

// DueProject is the reminder projection: just enough of a project and its
// creator to address a delivery-date notification.
type DueProject struct {
	ID           string
	Name         string
	DeliveryDate time.Time
	CreatorName  string
	CreatorEmail string
}
