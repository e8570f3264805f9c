package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-roles/internal/api/metrics"
	"github.com/99minutos/marketplace-roles/internal/core/domain"
	"github.com/99minutos/marketplace-roles/internal/core/ports"
)

type AuthHandler struct {
	tokens ports.TokenService
}

func NewAuthHandler(tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Empty fields are not rejected here; they fail as invalid credentials.
type loginRequest struct {
	Username string `json:"username" validate:"max=256"`
	Password string `json:"password" validate:"max=256"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates a user against the directory and returns a bearer token.
//
// @Summary      Authenticate a user and return a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       / [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, err := h.tokens.Issue(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
