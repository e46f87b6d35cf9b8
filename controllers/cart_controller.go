package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techstore/ledger"
	"techstore/middleware"
	"techstore/models"
	"techstore/services"
)

const cartEventsHeartbeat = 15 * time.Second

type CartController struct {
	Cart   *services.CartService
	Logger *zap.Logger
}

// @Summary Get cart
// @Description Line items, derived totals and their vi-VN renderings
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 401 {object} models.ErrorResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    ctrl.Cart.View(sess.Ledger),
	})
}

// @Summary Add item to cart
// @Description Adds quantity units (default 1) of a catalog product
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.AddItemRequest true "Product and quantity"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 423 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	sess := middleware.CurrentSession(c)
	view, err := ctrl.Cart.AddItem(sess.Ledger, req.ProductID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	name := req.ProductID
	for _, item := range view.Items {
		if item.ID == req.ProductID {
			name = item.Name
		}
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: fmt.Sprintf("%s đã được thêm vào giỏ hàng", name),
		Data:    view,
	})
}

// @Summary Update item quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param body body models.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 422 {object} models.ErrorResponse
// @Failure 423 {object} models.ErrorResponse
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	view, err := ctrl.Cart.UpdateQuantity(sess.Ledger, c.Param("id"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Số lượng sản phẩm đã được thay đổi.",
		Data:    view,
	})
}

// @Summary Remove item
// @Description Removing an id that is not in the cart leaves the cart unchanged
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 423 {object} models.ErrorResponse
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	id := c.Param("id")

	name := ""
	for _, item := range sess.Ledger.Items() {
		if item.ID == id {
			name = item.Name
		}
	}

	view, err := ctrl.Cart.RemoveItem(sess.Ledger, id)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Giỏ hàng không thay đổi."
	if name != "" {
		message = fmt.Sprintf("%s đã được xóa khỏi giỏ hàng.", name)
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message, Data: view})
}

// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 423 {object} models.ErrorResponse
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	view, err := ctrl.Cart.Clear(sess.Ledger)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Giỏ hàng đã được xóa.", Data: view})
}

// @Summary Stream cart changes
// @Description Server-sent events: a "cart" event with the current view, then one per change
// @Tags Cart
// @Security BearerAuth
// @Produce text/event-stream
// @Param token query string false "Session token for clients that cannot set headers"
// @Success 200 {object} models.CartView
// @Router /cart/events [get]
func (ctrl *CartController) Events(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	l := sess.Ledger
	pricing := l.Pricing()

	// Only the latest snapshot matters to a slow reader.
	updates := make(chan ledger.Snapshot, 1)
	unsubscribe := l.Subscribe(func(snap ledger.Snapshot) {
		for {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	heartbeat := time.NewTicker(cartEventsHeartbeat)
	defer heartbeat.Stop()

	ctrl.Logger.Debug("Cart stream opened", zap.String("session_id", sess.ID))
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("cart", services.BuildCartView(l.Snapshot(), pricing))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap := <-updates:
			c.SSEvent("cart", services.BuildCartView(snap, pricing))
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
	ctrl.Logger.Debug("Cart stream closed", zap.String("session_id", sess.ID))
}
