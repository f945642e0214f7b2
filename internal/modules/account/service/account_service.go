package service

import (
	"context"
	"errors"
	"strings"

	"livewall-server/internal/model"
	moduledto "livewall-server/internal/modules/account/dto"
	platformservice "livewall-server/internal/platform/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "Invalid username or password"

// Create 创建账户，角色为空时默认为 photographer。
func (s *Service) Create(ctx context.Context, req moduledto.CreateAccountRequest) (*model.Account, error) {
	role := model.RolePhotographer
	if raw := strings.TrimSpace(req.Role); raw != "" {
		role = model.AccountRole(strings.ToLower(raw))
		if !role.Valid() {
			return nil, platformservice.NewValidationError("Invalid role. Must be photographer or admin")
		}
	}
	return s.create(ctx, req.Username, req.Password, role)
}

// CreateAdmin 特权创建，强制 role=admin；调用方需先在 HTTP 层完成共享密钥校验。
func (s *Service) CreateAdmin(ctx context.Context, req moduledto.CreateAdminRequest) (*model.Account, error) {
	return s.create(ctx, req.Username, req.Password, model.RoleAdmin)
}

func (s *Service) create(ctx context.Context, username, password string, role model.AccountRole) (*model.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, platformservice.NewValidationError("Username and password are required")
	}

	exists, err := s.accountStore.UsernameExists(ctx, username, "")
	if err != nil {
		return nil, platformservice.WrapInternalError(err, "Failed to create user")
	}
	if exists {
		return nil, platformservice.NewConflictError("Username already exists")
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, platformservice.WrapInternalError(err, "Failed to create user")
	}

	account := &model.Account{
		Username: username,
		Password: hashed,
		IsActive: true,
		Role:     role,
	}
	if err := s.accountStore.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, platformservice.NewConflictError("Username already exists")
		}
		return nil, platformservice.WrapInternalError(err, "Failed to create user")
	}
	return account, nil
}

func (s *Service) List(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.accountStore.List(ctx)
	if err != nil {
		return nil, platformservice.WrapInternalError(err, "Failed to fetch users")
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	return accounts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.accountStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, platformservice.WrapInternalError(err, "Failed to fetch user")
	}
	return account, nil
}

// FindByUsername 返回包含密码哈希的完整记录，不存在时返回 (nil, nil)。
func (s *Service) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	account, err := s.accountStore.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformservice.WrapInternalError(err, "Failed to fetch user")
	}
	return account, nil
}

// Update 部分字段更新，密码会重新哈希。
func (s *Service) Update(ctx context.Context, id string, req moduledto.UpdateAccountRequest) (*model.Account, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, platformservice.NewValidationError("Username cannot be empty")
		}
		if username != account.Username {
			exists, err := s.accountStore.UsernameExists(ctx, username, account.ID)
			if err != nil {
				return nil, platformservice.WrapInternalError(err, "Failed to update user")
			}
			if exists {
				return nil, platformservice.NewConflictError("Username already exists")
			}
			updates["username"] = username
		}
	}

	if req.Password != nil {
		if *req.Password == "" {
			return nil, platformservice.NewValidationError("Password cannot be empty")
		}
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return nil, platformservice.WrapInternalError(err, "Failed to update user")
		}
		updates["password"] = hashed
	}

	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if req.Role != nil {
		role := model.AccountRole(strings.ToLower(strings.TrimSpace(*req.Role)))
		if !role.Valid() {
			return nil, platformservice.NewValidationError("Invalid role. Must be photographer or admin")
		}
		updates["role"] = role
	}

	if len(updates) == 0 {
		return account, nil
	}

	if err := s.accountStore.UpdateByID(ctx, account.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, platformservice.NewConflictError("Username already exists")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, platformservice.WrapInternalError(err, "Failed to update user")
	}
	return s.Get(ctx, account.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	affected, err := s.accountStore.DeleteByID(ctx, id)
	if err != nil {
		return platformservice.WrapInternalError(err, "Failed to delete user")
	}
	if affected == 0 {
		return notFound()
	}
	return nil
}

// Login 校验凭据；用户不存在与密码错误返回同一条错误信息。
func (s *Service) Login(ctx context.Context, username, password string) (*moduledto.LoginResponse, error) {
	account, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, platformservice.NewUnauthorizedError(invalidCredentialsMessage)
	}
	if !account.IsActive {
		return nil, platformservice.NewForbiddenError("Account is inactive. Contact administrator.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, platformservice.NewUnauthorizedError(invalidCredentialsMessage)
	}

	return &moduledto.LoginResponse{
		ID:       account.ID,
		Username: account.Username,
		IsActive: account.IsActive,
		Role:     account.Role,
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func notFound() error {
	return platformservice.NewNotFoundError("User not found")
}
