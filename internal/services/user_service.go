package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
)

// tierRank orders membership tiers so a recompute can never move a
// user down.
var tierRank = map[models.MembershipTier]int{
	models.TierBronze:   0,
	models.TierSilver:   1,
	models.TierGold:     2,
	models.TierPlatinum: 3,
}

// nextMembershipTier returns the tier a user holds after a point
// credit. Thresholds only ever promote; below the first threshold the
// current tier is kept.
func nextMembershipTier(current models.MembershipTier, totalPoints int) models.MembershipTier {
	var candidate models.MembershipTier
	switch {
	case totalPoints >= 10000:
		candidate = models.TierPlatinum
	case totalPoints >= 5000:
		candidate = models.TierGold
	case totalPoints >= 2000:
		candidate = models.TierSilver
	default:
		return current
	}
	if tierRank[candidate] > tierRank[current] {
		return candidate
	}
	return current
}

// CreateUserInput is the payload for account creation, shared by the
// admin endpoint and self-serve registration.
type CreateUserInput struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Phone    string      `json:"phone" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=CUSTOMER ADMIN"`
}

// UpdateUserInput updates name and phone; password only when provided.
type UpdateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

// UserService is the account registry: credentials, wishlist, loyalty
// points and membership tier.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return users, nil
	}

	// One query for every wishlist, grouped in memory.
	userIDs := make([]int64, len(users))
	for i := range users {
		userIDs[i] = users[i].ID
	}

	var items []models.WishlistItem
	err := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	wishlists := make(map[int64][]int64, len(users))
	for _, item := range items {
		wishlists[item.UserID] = append(wishlists[item.UserID], item.ProductID)
	}
	for i := range users {
		if list, ok := wishlists[users[i].ID]; ok {
			users[i].Wishlist = list
		} else {
			users[i].Wishlist = []int64{}
		}
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Addresses").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("User not found with id: %d", id)
		}
		return nil, err
	}
	if err := s.loadWishlist(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("User not found with email: %s", email)
		}
		return nil, err
	}
	if err := s.loadWishlist(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) loadWishlist(ctx context.Context, user *models.User) error {
	var productIDs []int64
	err := s.db.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ?", user.ID).
		Order("created_at").
		Pluck("product_id", &productIDs).Error
	if err != nil {
		return err
	}
	if productIDs == nil {
		productIDs = []int64{}
	}
	user.Wishlist = productIDs
	return nil
}

func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequestf("Email already exists")
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("phone = ?", input.Phone).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequestf("Phone already exists")
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := &models.User{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		PasswordHash:   password.Hash,
		Role:           role,
		MembershipTier: models.TierBronze,
		IsActive:       true,
		Wishlist:       []int64{},
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Phone = input.Phone

	if input.Password != "" {
		var password models.Password
		if err := password.Set(input.Password); err != nil {
			return nil, err
		}
		user.PasswordHash = password.Hash
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// AddToWishlist saves the product on the user's wishlist. Adding a
// product that is already saved is a no-op.
func (s *UserService) AddToWishlist(ctx context.Context, userID, productID int64) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		item := &models.WishlistItem{UserID: userID, ProductID: productID}
		if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
			return nil, err
		}
	}

	if err := s.loadWishlist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveFromWishlist deletes the saved product; removing an absent
// product is a no-op.
func (s *UserService) RemoveFromWishlist(ctx context.Context, userID, productID int64) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
	if err != nil {
		return nil, err
	}

	if err := s.loadWishlist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddPoints credits loyalty points and recomputes the membership tier.
func (s *UserService) AddPoints(ctx context.Context, userID int64, points int) (*models.User, error) {
	if points < 0 {
		return nil, apperr.BadRequestf("Points must not be negative")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Points += points
	user.MembershipTier = nextMembershipTier(user.MembershipTier, user.Points)

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
