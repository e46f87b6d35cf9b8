package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"techstore/models"
	"techstore/services"
)

type OrderController struct {
	Orders *services.OrderService
}

// @Summary Get all orders (Admin)
// @Tags Admin
// @Security AdminKey
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := ctrl.Orders.ListOrders(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get order by number (Admin)
// @Tags Admin
// @Security AdminKey
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{number} [get]
func (ctrl *OrderController) GetOrderByNumber(c *gin.Context) {
	order, err := ctrl.Orders.GetOrder(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Order retrieved", Data: order})
}
