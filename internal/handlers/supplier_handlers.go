package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/backend/internal/services"
)

// GetSuppliers is the handler for GET /api/suppliers
func (h *Handlers) GetSuppliers(c *gin.Context) {
	suppliers, err := h.Suppliers.GetAllSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, suppliers)
}

// CreateSupplier is the handler for POST /api/suppliers
func (h *Handlers) CreateSupplier(c *gin.Context) {
	var input services.CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	supplier, err := h.Suppliers.CreateSupplier(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Supplier created successfully", supplier)
}
