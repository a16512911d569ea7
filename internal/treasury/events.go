package treasury

import (
	"treasury-ledger-go/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newEvent(action, address string, amount decimal.Decimal) models.Event {
	return attrEvent(action, address, "amount", amount.String())
}

func attrEvent(action, address, key, value string) models.Event {
	return models.Event{
		Id:   uuid.New().String(),
		Type: eventType,
		Attributes: []models.Attribute{
			{Key: "action", Value: action},
			{Key: "address", Value: address},
			{Key: key, Value: value},
		},
	}
}
