package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/domain/booking"
	"github.com/davesbikeparts/partshub/internal/domain/job"
	"github.com/davesbikeparts/partshub/internal/domain/payment"
	"github.com/davesbikeparts/partshub/internal/http/middlewares"
	"github.com/davesbikeparts/partshub/internal/jobs"
	"github.com/davesbikeparts/partshub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingsRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	Create(ctx context.Context, req booking.CreateBookingRequest) (booking.Booking, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]booking.Booking, error)
	GetByID(ctx context.Context, id string) (booking.Booking, error)
	MarkPaidTx(ctx context.Context, tx pgx.Tx, id string, transactionID string) (booking.Booking, error)
}

type PaymentsAppender interface {
	CreateTx(ctx context.Context, tx pgx.Tx, req payment.CreatePaymentRequest) (payment.Payment, error)
}

type JobsEnqueuer interface {
	CreateTx(ctx context.Context, tx pgx.Tx, req job.CreateRequest) (job.Job, error)
}

type BookingsHandler struct {
	repo     BookingsRepository
	payments PaymentsAppender
	jobsRepo JobsEnqueuer
}

func NewBookingsHandler(repo BookingsRepository, payments PaymentsAppender, jobsRepo JobsEnqueuer) *BookingsHandler {
	return &BookingsHandler{repo: repo, payments: payments, jobsRepo: jobsRepo}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// GET /booking?myEmail= — self-service: the caller may only list their own
// bookings, enforced against the verified token identity before any store
// read happens.
func (h *BookingsHandler) ListOwn(ctx *gin.Context) {
	email, ok := middlewares.EmailFromContext(ctx)

	if !ok || email == "" {
		RespondUnauthenticated(ctx, "Missing identity")
		return
	}

	myEmail := ctx.Query("myEmail")

	if myEmail == "" {
		RespondBadRequest(ctx, "myEmail query parameter is required", nil)
		return
	}

	if myEmail != email {
		RespondForbidden(ctx, "You may only list your own bookings")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	items, err := h.repo.ListByOwner(cctx, myEmail)

	if err != nil {
		RespondInternal(ctx, "Could not list bookings")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// POST /booking — the owner email always comes from the token, never the
// body.
func (h *BookingsHandler) Create(ctx *gin.Context) {
	email, ok := middlewares.EmailFromContext(ctx)

	if !ok || email == "" {
		RespondUnauthenticated(ctx, "Missing identity")
		return
	}

	var req booking.CreateBookingRequest

	if !BindJSON(ctx, &req) {
		return
	}

	req.OwnerEmail = email

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	b, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create booking")
		return
	}

	ctx.JSON(http.StatusCreated, b)
}

// GET /booking/:id
func (h *BookingsHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !isUUID(id) {
		RespondBadRequest(ctx, "booking id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	b, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			RespondNotFound(ctx, "Booking not found")
			return
		}

		RespondInternal(ctx, "Could not fetch booking")
		return
	}

	ctx.JSON(http.StatusOK, b)
}

// PATCH /booking/:id — payment completion. The payment append, the booking
// update, and the receipt-job enqueue commit or roll back as one unit, so
// there is no window where a payment exists for an unpaid booking.
func (h *BookingsHandler) MarkPaid(ctx *gin.Context) {
	id := ctx.Param("id")

	if !isUUID(id) {
		RespondBadRequest(ctx, "booking id must be a valid UUID", nil)
		return
	}

	var req payment.CreatePaymentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	req.BookingID = id

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	tx, err := h.repo.BeginTx(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not record payment")
		return
	}

	defer func() { _ = tx.Rollback(cctx) }()

	b, err := h.repo.MarkPaidTx(cctx, tx, id, req.TransactionID)

	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			RespondNotFound(ctx, "Booking not found")
		case errors.Is(err, booking.ErrAlreadyPaid):
			RespondConflict(ctx, "already_paid", "This booking has already been paid.")
		default:
			RespondInternal(ctx, "Could not record payment")
		}
		return
	}

	if req.OwnerEmail == "" {
		req.OwnerEmail = b.OwnerEmail
	}

	p, err := h.payments.CreateTx(cctx, tx, req)

	if err != nil {
		RespondInternal(ctx, "Could not record payment")
		return
	}

	payload := jobs.BookingReceiptPayload{
		BookingID:     b.ID,
		PaymentID:     p.ID,
		TransactionID: p.TransactionID,
		OwnerEmail:    b.OwnerEmail,
		PartName:      b.PartName,
		AmountCents:   p.AmountCents,
		RequestedAt:   time.Now().UTC(),
	}

	raw, err := payload.JSON()

	if err != nil {
		RespondInternal(ctx, "Could not record payment")
		return
	}

	// idempotency key
	key := "receipt:" + b.ID

	_, err = h.jobsRepo.CreateTx(cctx, tx, job.CreateRequest{
		Type:           jobs.TypeBookingReceipt,
		Payload:        raw,
		RunAt:          time.Now().UTC(),
		MaxAttempts:    10,
		IdempotencyKey: &key,
	})
	if err != nil {
		// duplicate idempotency key inside the same tx is fine (rare, but safe)
		if !postgres.IsUniqueViolation(err) {
			RespondInternal(ctx, "Could not record payment")
			return
		}
	}

	// Commit once
	err = tx.Commit(cctx)
	if err != nil {
		RespondInternal(ctx, "Could not record payment")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"booking": b,
		"payment": p,
	})
}
