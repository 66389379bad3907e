package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/service"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	user, err := h.service.Register(input.Name, input.Email, input.Password, input.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	token, user, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "user": user})
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.GetAll()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.service.GetByEmail(c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperr.Validation(err))
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "User deleted successfully"})
}

