package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/backend/internal/services"
)

// CreateSupplierOrder is the handler for POST /api/supplier-orders
func (h *Handlers) CreateSupplierOrder(c *gin.Context) {
	var req services.SupplierOrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	order, err := h.SupplierOrders.CreateSupplierOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Supplier order created successfully", order)
}

// GetSupplierOrders is the handler for GET /api/supplier-orders
func (h *Handlers) GetSupplierOrders(c *gin.Context) {
	orders, err := h.SupplierOrders.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, orders)
}
