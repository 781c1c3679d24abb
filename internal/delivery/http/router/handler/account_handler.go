// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"userhub/internal/delivery/http/response"
	"userhub/internal/domain/entity"
	"userhub/internal/usecase"
)

// createAccountRequest is the payload for account creation.
type createAccountRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// updateAccountRequest is the payload for account updates. PasswordHashed is
// the caller's explicit assertion that the password field already carries a
// hash and must not be re-hashed.
type updateAccountRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	PasswordHashed bool   `json:"passwordHashed"`
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
}

// accountResponse is the external view of an account.
// The password hash is never serialized.
type accountResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAccountResponse(account *entity.Account) *accountResponse {
	return &accountResponse{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Active:    account.Active,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the account creation request.
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account creation input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.Create(c.Request().Context(), &usecase.CreateAccountInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAccountResponse(account), "Account created successfully")
}

// Update handles the account update request.
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account update input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.Update(c.Request().Context(), id, &usecase.UpdateAccountInput{
		Email:          req.Email,
		Password:       req.Password,
		PasswordHashed: req.PasswordHashed,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Account updated successfully")
}

// Deactivate handles the account deactivation (soft delete) request.
func (h *AccountHandler) Deactivate(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	if err := h.uc.Deactivate(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deactivated successfully")
}

// FindByID handles the account lookup request.
func (h *AccountHandler) FindByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	account, err := h.uc.FindByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Account retrieved successfully")
}

// List handles the account listing request.
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	list := make([]*accountResponse, 0, len(accounts))
	for _, account := range accounts {
		list = append(list, toAccountResponse(account))
	}

	return response.Success(c, http.StatusOK, list, "Accounts retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func parseIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
