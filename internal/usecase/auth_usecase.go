package usecase

import (
	"context"
	"time"

	stderrors "errors"

	"gamebrain/internal/domain/entity"
	"gamebrain/internal/domain/repository"
	"gamebrain/internal/infrastructure/firebase"
	"gamebrain/pkg/errors"
	"gamebrain/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
	authState    AuthStateStream
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient, authState AuthStateStream) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
		authState:    authState,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("This email is already in use.", nil)
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, translateAuthError(err)
	}

	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Role:      "user",
		Verified:  false,
		CreatedAt: time.Now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user profile", err)
	}

	token, _, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, translateAuthError(err)
	}

	uc.authState.SetSignedIn(uid)

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, uid, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Warn("auth: login failed for %s: %v", email, err)
		return nil, translateAuthError(err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	uc.authState.SetSignedIn(uid)

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context) error {
	uc.authState.SetSignedOut()
	return nil
}

func (uc *AuthUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

// translateAuthError converts provider error codes into user-facing
// messages.
func translateAuthError(err error) error {
	var authErr *firebase.AuthError
	if !stderrors.As(err, &authErr) {
		return errors.Internal("Something went wrong. Try again.", err)
	}

	switch authErr.Code {
	case "EMAIL_EXISTS":
		return errors.BadRequest("This email is already in use.", err)
	case "INVALID_EMAIL":
		return errors.BadRequest("Invalid email address.", err)
	case "WEAK_PASSWORD : Password should be at least 6 characters", "WEAK_PASSWORD":
		return errors.BadRequest("Password too weak (min. 6 characters).", err)
	case "EMAIL_NOT_FOUND":
		return errors.Unauthenticated("No account found with this email.", err)
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return errors.Unauthenticated("Invalid credentials.", err)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return errors.New("TOO_MANY_REQUESTS", "Too many attempts. Try again later.", 429, err)
	default:
		return errors.Internal("Something went wrong. Try again.", err)
	}
}
