package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/identity"
	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/domain/shared/valueobject"
)

// UserService handles profile and address management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns a user's profile with saved addresses
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}
	return toProfileResult(user), nil
}

// UpdateProfile updates the user's name and phone
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*ProfileResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if err := user.UpdateProfile(input.FirstName, input.LastName, input.Phone); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update profile",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	s.logger.Info("User profile updated", zap.String("user_id", user.ID.String()))
	return toProfileResult(user), nil
}

// AddAddress adds a saved shipping address to the user's profile
func (s *UserService) AddAddress(ctx context.Context, input AddAddressInput) (*AddressInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	opts := []valueobject.AddressOption{}
	if input.Line2 != "" {
		opts = append(opts, valueobject.WithLine2(input.Line2))
	}
	if input.Phone != "" {
		opts = append(opts, valueobject.WithPhone(input.Phone))
	}

	address, err := valueobject.NewAddress(
		input.FullName, input.Line1, input.City,
		input.State, input.PostalCode, input.Country, opts...)
	if err != nil {
		return nil, err
	}

	saved, err := user.AddAddress(input.Label, address, input.IsDefault)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to save address",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save address")
	}

	s.logger.Info("Address added",
		zap.String("user_id", user.ID.String()),
		zap.String("address_id", saved.ID.String()))

	info := toAddressInfo(saved)
	return &info, nil
}

// RemoveAddress deletes one of the user's saved addresses
func (s *UserService) RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if err := user.RemoveAddress(addressID); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to remove address",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove address")
	}

	s.logger.Info("Address removed",
		zap.String("user_id", userID.String()),
		zap.String("address_id", addressID.String()))
	return nil
}

// ListAddresses returns all of the user's saved addresses
func (s *UserService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	infos := make([]AddressInfo, 0, len(user.Addresses))
	for i := range user.Addresses {
		infos = append(infos, toAddressInfo(&user.Addresses[i]))
	}
	return infos, nil
}

func toProfileResult(user *identity.User) *ProfileResult {
	addresses := make([]AddressInfo, 0, len(user.Addresses))
	for i := range user.Addresses {
		addresses = append(addresses, toAddressInfo(&user.Addresses[i]))
	}
	return &ProfileResult{
		User:      toUserInfo(user),
		Addresses: addresses,
	}
}

func toAddressInfo(addr *identity.UserAddress) AddressInfo {
	return AddressInfo{
		ID:        addr.ID,
		Label:     addr.Label,
		Address:   addr.Address,
		IsDefault: addr.IsDefault,
	}
}
