package model

// Direction names a status change requested by an operator.
type Direction string

const (
	DirectionAdvance Direction = "advance"
	DirectionRevert  Direction = "revert"
	DirectionCancel  Direction = "cancel"
)

// Directions lists every supported direction.
var Directions = []Direction{DirectionAdvance, DirectionRevert, DirectionCancel}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusEnRoute, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is an end state of the delivery lifecycle.
// Delivered orders can still be reverted to en route.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Target returns the status reached from s in direction d.
//
//	Pendiente  advance→En Ruta                   cancel→Cancelado
//	En Ruta    advance→Entregado revert→Pendiente cancel→Cancelado
//	Entregado                    revert→En Ruta
//	Cancelado  (none)
func (s OrderStatus) Target(d Direction) (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		switch d {
		case DirectionAdvance:
			return OrderStatusEnRoute, true
		case DirectionCancel:
			return OrderStatusCancelled, true
		}
	case OrderStatusEnRoute:
		switch d {
		case DirectionAdvance:
			return OrderStatusDelivered, true
		case DirectionRevert:
			return OrderStatusPending, true
		case DirectionCancel:
			return OrderStatusCancelled, true
		}
	case OrderStatusDelivered:
		if d == DirectionRevert {
			return OrderStatusEnRoute, true
		}
	case OrderStatusCancelled:
	}
	return "", false
}

// AllowedDirections returns the directions accepted from s.
func (s OrderStatus) AllowedDirections() []Direction {
	var allowed []Direction
	for _, d := range Directions {
		if _, ok := s.Target(d); ok {
			allowed = append(allowed, d)
		}
	}
	return allowed
}
