package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/auth"
)

const refreshTokenHeader = "X-Refresh-Token"

type AuthHandler struct {
	login          auth.Login
	refresh        auth.Refresh
	logout         auth.Logout
	forgotPassword auth.ForgotPassword
	resetPassword  auth.ResetPassword
}

func NewAuthHandler(login auth.Login, refresh auth.Refresh, logout auth.Logout, forgot auth.ForgotPassword, reset auth.ResetPassword) *AuthHandler {
	return &AuthHandler{
		login:          login,
		refresh:        refresh,
		logout:         logout,
		forgotPassword: forgot,
		resetPassword:  reset,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.login.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, apiResponse{Error: &errorBody{
				Code:    "invalid_credentials",
				Message: "email or password is incorrect",
			}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := c.Request().Header.Get(refreshTokenHeader)
	if raw == "" {
		return c.JSON(http.StatusForbidden, apiResponse{Error: &errorBody{
			Code:    "invalid_refresh_token",
			Message: "missing refresh token",
		}})
	}

	out, err := h.refresh.Execute(c.Request().Context(), raw)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) || errors.Is(err, auth.ErrInvalidIdentity) {
			return c.JSON(http.StatusForbidden, apiResponse{Error: &errorBody{
				Code:    "invalid_refresh_token",
				Message: "refresh token is invalid or expired",
			}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, apiResponse{Data: CurrentUser(c)})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.logout.Execute(c.Request().Context(), c.Request().Header.Get(refreshTokenHeader)); err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "Logged out"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword answers the same way for known and unknown addresses.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.forgotPassword.Execute(c.Request().Context(), req.Email); err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "If the email exists, a reset link has been sent"})
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.resetPassword.Execute(c.Request().Context(), auth.ResetPasswordInput{
		Token:    req.Token,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidResetToken) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_reset_token",
				Message: "reset token is invalid or expired",
			}})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "Password has been reset"})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
		Code:    "internal_error",
		Message: "something went wrong",
	}})
}
