package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-tms-api/internal/model"
	"go-tms-api/pkg/apierror"
)

type userAccounts interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByLogin(ctx context.Context, login string) (model.User, error)
	CreateWithCredential(ctx context.Context, user model.User, credential string) (model.User, error)
}

type credentialStore interface {
	FindByUserID(ctx context.Context, userID int64) (string, error)
	Replace(ctx context.Context, userID int64, credential string) error
}

type tokenIssuer interface {
	Issue(principal model.Principal, ttl time.Duration) (model.IssuedToken, error)
}

// AuthService orchestrates login, registration and credential changes.
type AuthService struct {
	users       userAccounts
	credentials credentialStore
	hasher      *PasswordHasher
	tokens      tokenIssuer
	pictures    *PictureNormalizer
}

func NewAuthService(users userAccounts, credentials credentialStore, hasher *PasswordHasher, tokens tokenIssuer, pictures *PictureNormalizer) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		hasher:      hasher,
		tokens:      tokens,
		pictures:    pictures,
	}
}

func errUserNotFound() error {
	return apierror.New("NOT_FOUND", "User was not found", "", http.StatusNotFound)
}

// Login resolves the user by username or e-mail, verifies the password
// against the stored salted hash and issues a token. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, login string, password string, ttl time.Duration) (model.IssuedToken, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return model.IssuedToken{}, apierror.BadRequest("login and password are required", "")
	}

	user, err := s.users.FindByLogin(ctx, login)
	if errors.Is(err, model.ErrNotFound) {
		return model.IssuedToken{}, errUserNotFound()
	}
	if err != nil {
		return model.IssuedToken{}, err
	}

	stored, err := s.credentials.FindByUserID(ctx, user.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.IssuedToken{}, errUserNotFound()
	}
	if err != nil {
		return model.IssuedToken{}, err
	}

	if !s.hasher.Verify(password, stored) {
		return model.IssuedToken{}, errUserNotFound()
	}

	return s.tokens.Issue(user.Principal(), ttl)
}

// Register creates the user together with its initial credential.
func (s *AuthService) Register(ctx context.Context, signup model.SignupRequest) (model.UserDTO, error) {
	user := signup.ToUser()
	if user.Username == "" || signup.Password == "" {
		return model.UserDTO{}, apierror.BadRequest("username and password are required", "")
	}

	picture, err := s.pictures.Normalize(user.ProfilePicture)
	if err != nil {
		return model.UserDTO{}, err
	}
	user.ProfilePicture = picture

	credential, err := s.hasher.Hash(signup.Password)
	if err != nil {
		return model.UserDTO{}, err
	}

	created, err := s.users.CreateWithCredential(ctx, user, credential)
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.UserDTO{}, apierror.New("ALREADY_EXISTS", "User with this username already exists", user.Username, http.StatusConflict)
	}
	if err != nil {
		return model.UserDTO{}, err
	}

	return model.UserToDTO(created), nil
}

// ChangePassword replaces the caller's credential after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, principal *model.Principal, current string, next string) error {
	userID, err := principalUserID(principal)
	if err != nil {
		return err
	}

	if next == "" {
		return apierror.BadRequest("new password is required", "newPassword")
	}

	stored, err := s.credentials.FindByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return errUserNotFound()
	}
	if err != nil {
		return err
	}

	if !s.hasher.Verify(current, stored) {
		return apierror.BadRequest("current password is incorrect", "currentPassword")
	}

	credential, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}

	if err := s.credentials.Replace(ctx, userID, credential); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return errUserNotFound()
		}
		return fmt.Errorf("replace credential: %w", err)
	}

	return nil
}

func (s *AuthService) Me(ctx context.Context, principal *model.Principal) (model.UserDTO, error) {
	userID, err := principalUserID(principal)
	if err != nil {
		return model.UserDTO{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.UserDTO{}, apierror.NotFound("User", userID)
	}
	if err != nil {
		return model.UserDTO{}, err
	}

	return model.UserToDTO(user), nil
}

func principalUserID(principal *model.Principal) (int64, error) {
	if principal == nil {
		return 0, apierror.Unauthorized()
	}

	userID, err := strconv.ParseInt(principal.UserID, 10, 64)
	if err != nil {
		return 0, apierror.Unauthorized()
	}

	return userID, nil
}
