package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	publicMessage = "data accessible to both roles"
	buyerMessage  = "buyer-only data"
	sellerMessage = "seller-only data"
)

// DataHandler serves the protected resources. Role gating happens in the
// RequireRole middleware mounted on the buyer and seller routes.
type DataHandler struct{}

func NewDataHandler() *DataHandler {
	return &DataHandler{}
}

// Public returns data available to any authenticated principal.
//
// @Summary      Data accessible to buyers and sellers
// @Tags         data
// @Produce      json
// @Security     bearerAuth
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /public/data [get]
func (h *DataHandler) Public(c echo.Context) error {
	return h.respond(c, publicMessage)
}

// Buyer returns buyer-only data.
//
// @Summary      Data accessible to buyers only
// @Tags         data
// @Produce      json
// @Security     bearerAuth
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /buyer/data [get]
func (h *DataHandler) Buyer(c echo.Context) error {
	return h.respond(c, buyerMessage)
}

// Seller returns seller-only data.
//
// @Summary      Data accessible to sellers only
// @Tags         data
// @Produce      json
// @Security     bearerAuth
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /seller/data [get]
func (h *DataHandler) Seller(c echo.Context) error {
	return h.respond(c, sellerMessage)
}

func (h *DataHandler) respond(c echo.Context, msg string) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
