package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
	"github.com/freshmart/backend/internal/services"
)

// Register is the handler for POST /api/auth/register. Self-serve
// signups always become customers.
func (h *Handlers) Register(c *gin.Context) {
	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	input.Role = models.RoleCustomer

	user, err := h.Users.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Account registered successfully", user)
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := h.Users.GetUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		// Do not reveal whether the account exists.
		if apperr.IsNotFound(err) {
			respondError(c, apperr.Unauthorizedf("Invalid email or password"))
			return
		}
		respondError(c, err)
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !matches {
		respondError(c, apperr.Unauthorizedf("Invalid email or password"))
		return
	}

	token, err := h.Tokens.Generate(user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"token": token,
		"user":  user,
	})
}
