package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusReceived, OrderStatusSentToPrinter, true},
		{OrderStatusReceived, OrderStatusSentToPOS, true},
		{OrderStatusReceived, OrderStatusPrinted, false},
		{OrderStatusSentToPrinter, OrderStatusPrinted, true},
		{OrderStatusSentToPrinter, OrderStatusPrinterError, true},
		{OrderStatusSentToPrinter, OrderStatusSentToPOS, false},
		{OrderStatusSentToPOS, OrderStatusPOSError, true},
		{OrderStatusSentToPOS, OrderStatusReceived, false},
		{OrderStatusPrinterError, OrderStatusSentToPrinter, true},
		{OrderStatusPrinterError, OrderStatusPrinted, false},
		{OrderStatusPOSError, OrderStatusSentToPOS, true},
		{OrderStatusPOSError, OrderStatusSentToPrinter, false},
		{OrderStatusPrinted, OrderStatusReceived, false},
		{OrderStatusPrinted, OrderStatusSentToPOS, false},
		{OrderStatus("bogus"), OrderStatusReceived, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
