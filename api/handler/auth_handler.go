package handler

import (
	"errors"
	"net/http"
	"strings"

	"formflow/api/middleware"
	"formflow/internal/dto"
	"formflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Reset    *service.PasswordResetService
	Users    *service.UserService
	Validate *validator.Validate
}

func NewAuthHandler(auth *service.AuthService, reset *service.PasswordResetService, users *service.UserService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{Auth: auth, Reset: reset, Users: users, Validate: validate}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
	if err := h.Auth.Register(c.Request().Context(), input); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "Account created successfully")
}

func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req dto.AuthRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Auth.Authenticate(c.Request().Context(), req.Email, req.Password, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponse{
		Token: result.Token,
		Role:  string(result.Role),
		Email: result.Email,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Auth.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.UpdateProfileRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	user, err := h.Users.UpdateProfile(c.Request().Context(), userID, service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

// ForgotPassword acknowledges identically whether or not the email maps to
// an account.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Reset.RequestReset(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return writeServiceError(c, err)
		}
		// Delivery problems stay invisible to the caller too.
		c.Logger().Error(err)
	}
	return writeMessage(c, http.StatusOK, "If the email exists, a reset code has been sent")
}

func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var req dto.VerifyCodeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Reset.VerifyCode(c.Request().Context(), req.Email, req.Code); err != nil {
		if errors.Is(err, service.ErrInvalidResetCode) || errors.Is(err, service.ErrInvalidInput) {
			return c.JSON(http.StatusOK, dto.VerifyCodeResponse{Valid: false, Error: err.Error()})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.VerifyCodeResponse{Valid: true})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	err := h.Reset.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "Password has been reset")
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
