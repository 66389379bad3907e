package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/service"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/response"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category"`
}

func (h *ProductHandler) GetAll(c *gin.Context) {
	products, err := h.service.GetAll()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

func (h *ProductHandler) Add(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	product, err := h.service.Add(input.Name, input.Description, input.Price, input.Category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	product, err := h.service.Update(id, input.Name, input.Description, input.Price, input.Category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) GetByCategory(c *gin.Context) {
	products, err := h.service.GetByCategory(c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.Error(c, apperr.Validation(errNoKeyword))
		return
	}

	products, err := h.service.Search(keyword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

var errNoKeyword = errors.New("search keyword is required")

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Validation(err)
	}
	return uint(id), nil
}
