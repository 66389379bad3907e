package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/service"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/response"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// PlaceOrderInput mirrors the legacy order placement body. Keys of
// ProductQuantities are product ids.
type PlaceOrderInput struct {
	UserID            uint            `json:"userId" binding:"required"`
	ProductQuantities map[uint]int    `json:"productQuantities" binding:"required"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var input PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), input.UserID, input.ProductQuantities, input.TotalAmount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.service.GetAll()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *OrderHandler) GetByUser(c *gin.Context) {
	userID, err := parseUint(c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	orders, err := h.service.GetByUserID(userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *OrderHandler) GetByStatus(c *gin.Context) {
	orders, err := h.service.GetByStatus(c.Param("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *OrderHandler) GetRecent(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	orders, err := h.service.GetRecent(days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseUint(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.service.UpdateStatus(orderID, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := parseUint(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.service.Cancel(orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperr.Validation(err)
	}
	return uint(v), nil
}
