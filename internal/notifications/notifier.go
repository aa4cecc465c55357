package notifications

import "context"

type SendBookingReceiptInput struct {
	Email         string
	PartName      string
	BookingID     string
	TransactionID string
	AmountCents   int64
}

type Notifier interface {
	SendBookingReceipt(ctx context.Context, input SendBookingReceiptInput) error
}
