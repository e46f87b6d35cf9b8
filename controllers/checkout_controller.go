package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techstore/middleware"
	"techstore/models"
	"techstore/money"
	"techstore/services"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

// @Summary Place order
// @Description Validates shipping and payment details, simulates payment and empties the cart.
// @Description The cart is locked until the call returns; disconnecting cancels the payment.
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CheckoutRequest true "Shipping and payment details"
// @Success 200 {object} models.Response{data=models.CheckoutResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 423 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	order, err := ctrl.Checkout.Checkout(c.Request.Context(), sess.ID, sess.Ledger, req)
	if err != nil {
		respondError(c, err)
		return
	}

	total := money.Format(order.Totals.Total)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Thanh toán thành công! Đơn hàng của bạn đã được xác nhận. Tổng tiền: " + total,
		Data: models.CheckoutResponse{
			Order:          order,
			FormattedTotal: total,
		},
	})
}

// @Summary Checkout status
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CheckoutStatus}
// @Router /checkout [get]
func (ctrl *CheckoutController) Status(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Checkout status retrieved",
		Data:    models.CheckoutStatus{Pending: ctrl.Checkout.Pending(sess.ID)},
	})
}

// @Summary Cancel pending checkout
// @Description Aborts the simulated payment; the cart is unlocked with its items intact
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout [delete]
func (ctrl *CheckoutController) Cancel(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if !ctrl.Checkout.Cancel(sess.ID) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "No pending checkout",
		})
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout cancelled"})
}
