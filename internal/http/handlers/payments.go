package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/payments"
	"github.com/gin-gonic/gin"
)

type PaymentIntentHandler struct {
	intents payments.IntentCreator
}

func NewPaymentIntentHandler(intents payments.IntentCreator) *PaymentIntentHandler {
	return &PaymentIntentHandler{intents: intents}
}

type createIntentRequest struct {
	// Price in dollars, as the storefront sends it.
	Price float64 `json:"price" binding:"required,gt=0"`
}

// POST /create-payment-intent — delegates to the payment processor and
// hands the client secret back to the storefront.
func (h *PaymentIntentHandler) Create(ctx *gin.Context) {
	var req createIntentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	amountCents := int64(math.Round(req.Price * 100))

	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	intent, err := h.intents.CreateIntent(cctx, amountCents)

	if err != nil {
		RespondInternal(ctx, "Could not create payment intent")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
	})
}
