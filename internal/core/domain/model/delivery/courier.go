package delivery

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// Courier is the directory record of an external courier company usable for
// courier deliveries. Couriers are master data maintained outside this
// service; the dispatcher only reads them through the directory port.
type Courier struct {
	ID     kernel.UUID
	Name   string
	Phone  string
	Active bool
}
