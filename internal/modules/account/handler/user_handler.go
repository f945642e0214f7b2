package handler

import (
	"net/http"

	"livewall-server/internal/common/httpx"
	moduledto "livewall-server/internal/modules/account/dto"
	"livewall-server/internal/model"

	"github.com/gin-gonic/gin"
)

// CreateUser 自助注册，角色固定为 photographer
func (h *Handler) CreateUser(c *gin.Context) {
	var req moduledto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteBadRequest(c, "Invalid request body")
		return
	}
	req.Role = string(model.RolePhotographer)

	account, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// CreateAdmin 管理员创建，共享密钥由 middleware.AdminSecret 校验
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req moduledto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteBadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.CreateAdmin(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to create admin")
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *Handler) ListUsers(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) GetUser(c *gin.Context) {
	account, err := h.accountService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req moduledto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteBadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.accountService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Login 校验用户名密码，成功返回账户概要
func (h *Handler) Login(c *gin.Context) {
	var req moduledto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteBadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.accountService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, profile)
}
