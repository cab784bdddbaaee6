package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/backend/internal/models"
	"github.com/freshmart/backend/internal/services"
)

// GetAllOrders is the handler for GET /api/orders
func (h *Handlers) GetAllOrders(c *gin.Context) {
	orders, err := h.Orders.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, orders)
}

// GetOrderByID is the handler for GET /api/orders/:id
func (h *Handlers) GetOrderByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid order id")
		return
	}

	order, err := h.Orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

// GetUserOrders is the handler for GET /api/orders/user/:userId
func (h *Handlers) GetUserOrders(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid user id")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	orders, pageInfo, err := h.Orders.GetUserOrdersPaginated(c.Request.Context(), userID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, orders, pageInfo)
}

// GetOrdersByStatus is the handler for GET /api/orders/status/:status
func (h *Handlers) GetOrdersByStatus(c *gin.Context) {
	status := models.OrderStatus(c.Param("status"))
	if !status.Valid() {
		respondBadRequest(c, "Unknown order status: "+c.Param("status"))
		return
	}

	orders, err := h.Orders.GetOrdersByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, orders)
}

// CreateOrder is the handler for POST /api/orders?userId=
func (h *Handlers) CreateOrder(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "userId query parameter is required")
		return
	}

	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	order, err := h.Orders.CreateOrder(c.Request.Context(), &input, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Order created successfully", order)
}

// UpdateOrderStatus is the handler for PATCH /api/orders/:id/status?status=
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid order id")
		return
	}

	status := models.OrderStatus(c.Query("status"))

	order, err := h.Orders.UpdateOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOKWithMessage(c, "Order status updated successfully", order)
}

// CancelOrder is the handler for POST /api/orders/:id/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid order id")
		return
	}

	if err := h.Orders.CancelOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Order cancelled successfully")
}

// GetOrderStats is the handler for GET /api/orders/stats/count
func (h *Handlers) GetOrderStats(c *gin.Context) {
	stats, err := h.Orders.OrderStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats)
}
