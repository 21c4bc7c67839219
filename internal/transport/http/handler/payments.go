package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorpath/internal/app"
	"mentorpath/internal/payments"
	"mentorpath/internal/transport/http/response"
)

type PaymentHandler struct {
	paymentService *app.PaymentService
}

type ConnectPaymentsRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

func NewPaymentHandler(paymentService *app.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Connect(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req ConnectPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.paymentService.Connect(c.Request.Context(), userID, payments.Credentials{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
	})
	if err != nil {
		writeServiceError(c, err, "connect payments failed")
		return
	}
	response.OK(c, gin.H{"connected": true})
}

func (h *PaymentHandler) Disconnect(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	h.paymentService.Disconnect(c.Request.Context(), userID)
	response.OK(c, gin.H{"connected": false})
}

func (h *PaymentHandler) Balance(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var (
		amount float64
		err    error
	)
	if c.Query("refresh") == "true" {
		amount, err = h.paymentService.Balance(c.Request.Context(), userID)
	} else {
		amount, err = h.paymentService.CachedBalance(c.Request.Context(), userID)
	}
	if err != nil {
		writeServiceError(c, err, "fetch balance failed")
		return
	}
	response.OK(c, gin.H{
		"amount":    amount,
		"formatted": payments.FormatTDS(amount),
	})
}

func (h *PaymentHandler) Transactions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	lines, err := h.paymentService.Transactions(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "fetch transactions failed")
		return
	}
	response.OK(c, gin.H{"transactions": lines})
}
