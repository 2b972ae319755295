package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"trazot/internal/domain/entity"
	"trazot/internal/domain/repository"
	"trazot/pkg/errors"
)

type UserUseCase struct {
	store       repository.Store
	broadcaster Broadcaster
}

func NewUserUseCase(store repository.Store, broadcaster Broadcaster) *UserUseCase {
	return &UserUseCase{
		store:       store,
		broadcaster: broadcaster,
	}
}

type RegisterUserInput struct {
	Name    string
	Email   string
	Phone   string
	Country string
}

// Register creates a user with a country-based starting grant. Email is a
// case-insensitive unique identifier; phone is unique when provided. The
// guest sentinel is rejected and excluded from uniqueness checks.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if strings.EqualFold(email, entity.GuestEmail) {
		return nil, errors.BadRequest("This email address is reserved", nil)
	}

	users, err := uc.store.Users(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load users", err)
	}

	for _, u := range users {
		if u.IsGuest() {
			continue
		}
		if strings.EqualFold(u.Email, email) {
			return nil, errors.Conflict("Email already registered")
		}
		if input.Phone != "" && u.Phone == input.Phone {
			return nil, errors.Conflict("Phone number already registered")
		}
	}

	user := entity.User{
		ID:       uuid.New().String(),
		Name:     input.Name,
		Email:    email,
		Phone:    input.Phone,
		Country:  input.Country,
		Credits:  CountryGrant(input.Country),
		JoinedAt: time.Now(),
	}

	users = append(users, user)
	if err := uc.store.SaveUsers(ctx, users); err != nil {
		return nil, errors.Internal("Failed to save users", err)
	}
	if err := uc.store.SaveCurrentUser(ctx, &user); err != nil {
		return nil, errors.Internal("Failed to cache session user", err)
	}

	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(ctx)
	}
	return &user, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if id == entity.GuestID {
		return entity.GuestUser(), nil
	}

	users, err := uc.store.Users(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load users", err)
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (uc *UserUseCase) List(ctx context.Context) ([]entity.User, error) {
	users, err := uc.store.Users(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load users", err)
	}
	return users, nil
}
