package handlers

import (
	"github.com/freshmart/backend/internal/auth"
	"github.com/freshmart/backend/internal/services"
)

// Handlers holds every dependency the HTTP layer needs.
type Handlers struct {
	Categories     *services.CategoryService
	Products       *services.ProductService
	Users          *services.UserService
	Suppliers      *services.SupplierService
	Orders         *services.OrderService
	SupplierOrders *services.SupplierOrderService
	Tokens         *auth.TokenManager
}
