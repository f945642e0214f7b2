package dto

import "livewall-server/internal/model"

type CreateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateAccountRequest 指针字段为 nil 表示不修改
type UpdateAccountRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsActive *bool   `json:"isActive"`
	Role     *string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse 登录成功返回的最小账户信息，不签发令牌
type LoginResponse struct {
	ID       string            `json:"id"`
	Username string            `json:"username"`
	IsActive bool              `json:"isActive"`
	Role     model.AccountRole `json:"role"`
}
