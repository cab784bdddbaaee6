package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MembershipTier is the loyalty rank derived from accumulated points.
type MembershipTier string

const (
	TierBronze   MembershipTier = "BRONZE"
	TierSilver   MembershipTier = "SILVER"
	TierGold     MembershipTier = "GOLD"
	TierPlatinum MembershipTier = "PLATINUM"
)

// Role controls access to the admin surface.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User is the model for the 'users' table.
type User struct {
	ID             int64          `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"not null"`
	Email          string         `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone          string         `json:"phone" gorm:"size:32;uniqueIndex;not null"`
	PasswordHash   string         `json:"-" gorm:"column:password_hash;not null"`
	Points         int            `json:"points" gorm:"not null;default:0"`
	MembershipTier MembershipTier `json:"membershipTier" gorm:"size:20;default:'BRONZE'"`
	Role           Role           `json:"role" gorm:"size:20;default:'CUSTOMER'"`
	IsActive       bool           `json:"isActive" gorm:"default:true"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Wishlist  []int64   `json:"wishlist" gorm:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Address is a saved shipping address belonging to a user.
type Address struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	UserID    int64  `json:"-" gorm:"index;not null"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	City      string `json:"city"`
	IsDefault bool   `json:"isDefault" gorm:"default:false"`
}

// WishlistItem is one saved product on a user's wishlist. The composite
// unique index makes adds naturally idempotent at the store level.
type WishlistItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"userId" gorm:"uniqueIndex:idx_wishlist_user_product;not null"`
	ProductID int64     `json:"productId" gorm:"uniqueIndex:idx_wishlist_user_product;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Password wraps a plaintext/hash pair so handlers never touch bcrypt
// directly.
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
