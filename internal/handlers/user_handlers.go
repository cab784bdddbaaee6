package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/backend/internal/services"
)

// GetAllUsers is the handler for GET /api/users
func (h *Handlers) GetAllUsers(c *gin.Context) {
	users, err := h.Users.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, users)
}

// GetUserByID is the handler for GET /api/users/:userId
func (h *Handlers) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid user id")
		return
	}

	user, err := h.Users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

// CreateUser is the handler for POST /api/users
func (h *Handlers) CreateUser(c *gin.Context) {
	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := h.Users.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "User created successfully", user)
}

// UpdateUser is the handler for PUT /api/users/:userId
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid user id")
		return
	}

	var input services.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := h.Users.UpdateUser(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOKWithMessage(c, "User updated successfully", user)
}

// DeleteUser is the handler for DELETE /api/users/:userId
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid user id")
		return
	}

	if err := h.Users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "User deleted successfully")
}

func wishlistIDs(c *gin.Context) (int64, int64, bool) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid user id")
		return 0, 0, false
	}
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid product id")
		return 0, 0, false
	}
	return userID, productID, true
}

// AddToWishlist is the handler for POST /api/users/:userId/wishlist/:productId
func (h *Handlers) AddToWishlist(c *gin.Context) {
	userID, productID, ok := wishlistIDs(c)
	if !ok {
		return
	}

	user, err := h.Users.AddToWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOKWithMessage(c, "Product added to wishlist", user)
}

// RemoveFromWishlist is the handler for DELETE /api/users/:userId/wishlist/:productId
func (h *Handlers) RemoveFromWishlist(c *gin.Context) {
	userID, productID, ok := wishlistIDs(c)
	if !ok {
		return
	}

	user, err := h.Users.RemoveFromWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOKWithMessage(c, "Product removed from wishlist", user)
}

type addPointsInput struct {
	Points int `json:"points" binding:"required,gt=0"`
}

// AddPoints is the handler for POST /api/users/:userId/points
func (h *Handlers) AddPoints(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid user id")
		return
	}

	var input addPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := h.Users.AddPoints(c.Request.Context(), id, input.Points)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOKWithMessage(c, "Points added successfully", user)
}
