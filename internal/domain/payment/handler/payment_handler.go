package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/contract"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/service"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/response"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req contract.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	resp, err := h.service.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Verify replies in plain text; the checkout callback page shows the body
// verbatim.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req contract.PaymentVerification
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	ok, err := h.service.VerifyPayment(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ok {
		c.String(http.StatusBadRequest, "Payment verification failed")
		return
	}
	c.String(http.StatusOK, "Payment verified successfully")
}

func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	resp, err := h.service.UpdatePaymentStatus(c.Request.Context(), c.Param("razorpayOrderId"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	payment, err := h.service.GetByRazorpayOrderID(c.Param("razorpayOrderId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payment)
}

func (h *PaymentHandler) GetByOrderRef(c *gin.Context) {
	orderID, err := parseUint(c.Param("orderId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	payments, err := h.service.GetByOrderID(orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payments)
}

func (h *PaymentHandler) GetByUser(c *gin.Context) {
	userID, err := parseUint(c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	payments, err := h.service.GetByUserID(userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payments)
}

func (h *PaymentHandler) GetByStatus(c *gin.Context) {
	payments, err := h.service.GetByStatus(c.Param("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payments)
}

func (h *PaymentHandler) GetRecent(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	payments, err := h.service.GetRecent(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payments)
}

func (h *PaymentHandler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// Health is the probe the order service calls before linking payments.
func (h *PaymentHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, fmt.Sprintf("Payment Service Connected - %d", time.Now().UnixMilli()))
}

type refundInput struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	var input refundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	payment, err := h.service.Refund(c.Param("razorpayOrderId"), input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payment)
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperr.Validation(err)
	}
	return uint(v), nil
}
