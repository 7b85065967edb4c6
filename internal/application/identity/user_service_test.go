package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/shared"
)

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates name and phone", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newActiveUser(t, "jane@example.com", "SecurePass123!")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		result, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID:    user.ID,
			FirstName: "Janet",
			LastName:  "Smith",
			Phone:     "+1-555-0100",
		})

		require.NoError(t, err)
		assert.Equal(t, "Janet", result.User.FirstName)
		assert.Equal(t, "Smith", result.User.LastName)
		assert.Equal(t, "+1-555-0100", result.User.Phone)
		repo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: id, FirstName: "X", LastName: "Y"})
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestUserService_Addresses(t *testing.T) {
	ctx := context.Background()

	t.Run("add and list addresses", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newActiveUser(t, "jane@example.com", "SecurePass123!")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		info, err := svc.AddAddress(ctx, AddAddressInput{
			UserID:     user.ID,
			Label:      "Home",
			FullName:   "Jane Doe",
			Line1:      "1 Main St",
			Line2:      "Apt 4",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62704",
			Country:    "US",
			Phone:      "+1-555-0100",
			IsDefault:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Home", info.Label)
		assert.True(t, info.IsDefault)
		assert.Equal(t, "Apt 4", info.Address.Line2)

		addresses, err := svc.ListAddresses(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, addresses, 1)
		assert.Equal(t, info.ID, addresses[0].ID)
	})

	t.Run("second default address replaces first", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newActiveUser(t, "jane@example.com", "SecurePass123!")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		first, err := svc.AddAddress(ctx, AddAddressInput{
			UserID: user.ID, Label: "Home", FullName: "Jane Doe",
			Line1: "1 Main St", City: "Springfield", State: "IL",
			PostalCode: "62704", Country: "US", IsDefault: true,
		})
		require.NoError(t, err)

		second, err := svc.AddAddress(ctx, AddAddressInput{
			UserID: user.ID, Label: "Work", FullName: "Jane Doe",
			Line1: "99 Office Park", City: "Springfield", State: "IL",
			PostalCode: "62704", Country: "US", IsDefault: true,
		})
		require.NoError(t, err)
		assert.True(t, second.IsDefault)

		addresses, err := svc.ListAddresses(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, addresses, 2)
		for _, a := range addresses {
			if a.ID == first.ID {
				assert.False(t, a.IsDefault)
			}
		}
	})

	t.Run("invalid address is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newActiveUser(t, "jane@example.com", "SecurePass123!")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err := svc.AddAddress(ctx, AddAddressInput{
			UserID: user.ID, Label: "Home",
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("remove address", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newActiveUser(t, "jane@example.com", "SecurePass123!")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		info, err := svc.AddAddress(ctx, AddAddressInput{
			UserID: user.ID, Label: "Home", FullName: "Jane Doe",
			Line1: "1 Main St", City: "Springfield", State: "IL",
			PostalCode: "62704", Country: "US",
		})
		require.NoError(t, err)

		require.NoError(t, svc.RemoveAddress(ctx, user.ID, info.ID))

		addresses, err := svc.ListAddresses(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, addresses)
	})

	t.Run("removing unknown address fails", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newActiveUser(t, "jane@example.com", "SecurePass123!")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.RemoveAddress(ctx, user.ID, uuid.New())
		require.Error(t, err)
	})
}
