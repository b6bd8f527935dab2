package services

import (
	"context"
	"strings"
	"time"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/blockchain"
	"creatorhub/internal/models"
	"creatorhub/pkg/hash"
	"creatorhub/pkg/jwt"
)

// UserService handles registration, login, profiles and wallet binding.
type UserService struct {
	users UserStore

	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(users UserStore, jwtSecret string, tokenTTL time.Duration) *UserService {
	return &UserService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates an account and returns the user with a session
// token. Role is fixed at registration.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	if len(in.Username) < 3 {
		return nil, "", apperrors.Validation("username must be at least 3 characters")
	}
	if len(in.Password) < 6 {
		return nil, "", apperrors.Validation("password must be at least 6 characters")
	}
	if !models.ValidRole(in.Role) {
		return nil, "", apperrors.Validation("role must be creator, subscriber or admin")
	}

	if existing, err := s.users.GetUserByEmail(ctx, in.Email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", apperrors.Conflict("email already registered")
	}
	if existing, err := s.users.GetUserByUsername(ctx, in.Username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", apperrors.Conflict("username already taken")
	}

	hashed, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Role:     in.Role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks credentials and returns the user with a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !hash.CheckPassword(user.Password, password) {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

type UpdateProfileInput struct {
	Username     *string
	Email        *string
	Bio          *string
	ProfileImage *string
	WebhookURL   *string
}

// UpdateProfile applies the provided fields to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if len(username) < 3 {
			return nil, apperrors.Validation("username must be at least 3 characters")
		}
		if other, err := s.users.GetUserByUsername(ctx, username); err != nil {
			return nil, err
		} else if other != nil && other.ID != userID {
			return nil, apperrors.Conflict("username already taken")
		}
		user.Username = username
	}
	if in.Email != nil {
		if other, err := s.users.GetUserByEmail(ctx, *in.Email); err != nil {
			return nil, err
		} else if other != nil && other.ID != userID {
			return nil, apperrors.Conflict("email already registered")
		}
		user.Email = *in.Email
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}
	if in.WebhookURL != nil {
		user.WebhookURL = *in.WebhookURL
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ConnectWallet binds an Ethereum address to the user's account.
// Rebinding a different address is allowed.
func (s *UserService) ConnectWallet(ctx context.Context, userID uint, address string) (*models.User, error) {
	if !blockchain.ValidAddress(address) {
		return nil, apperrors.Validation("invalid wallet address")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.WalletAddress = address
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
