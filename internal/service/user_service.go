// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Paulodemoc/torochallenge/internal/auth"
	"github.com/Paulodemoc/torochallenge/internal/domain"
	"github.com/Paulodemoc/torochallenge/internal/repository"
	"github.com/Paulodemoc/torochallenge/internal/util"
	"github.com/Paulodemoc/torochallenge/pkg/db"

	"golang.org/x/crypto/bcrypt"
)

// UserService defines the business logic for users and authentication.
type UserService interface {
	// Authenticate verifies the credentials and returns a signed token.
	Authenticate(ctx context.Context, username, password string) (string, *domain.User, error)
	// GetUserData returns the user record for the given identifier.
	GetUserData(ctx context.Context, userID string) (*domain.User, error)
	// Register creates a user and a zero-funds account in one transaction.
	Register(ctx context.Context, username, password string) (*domain.User, *domain.Account, error)
}

// userService implements the UserService interface.
type userService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	jwtSecret   string
	jwtTTL      time.Duration
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	jwtSecret string,
	jwtTTL time.Duration,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) UserService {
	return &userService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// Authenticate verifies the credentials and returns a signed token.
// Blank or unknown credentials and a wrong password all surface as the same
// ErrInvalidCredentials so callers cannot probe for usernames.
func (s *userService) Authenticate(ctx context.Context, username, password string) (string, *domain.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", nil, util.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("authenticate: failed to get user '%s': %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.jwtTTL, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("authenticate: failed to sign token: %w", err)
	}

	return token, user, nil
}

// GetUserData returns the user record for the given identifier.
func (s *userService) GetUserData(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.NewNotFound(util.EntityUser, userID)
		}
		return nil, fmt.Errorf("get user data: failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// Register creates a user and a zero-funds account in one transaction.
func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, *domain.Account, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, nil, util.ErrInvalidInput
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("register: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByUsername(ctx, txExecutor, username)
	if err == nil {
		return nil, nil, util.ErrDuplicateEntry
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, nil, fmt.Errorf("register: failed to check existing user: %w", err)
	}

	user := domain.NewUser(username, string(hashedPassword))
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	account := domain.NewAccount(user.ID)
	if err := s.accountRepo.CreateAccount(ctx, txExecutor, account); err != nil {
		return nil, nil, fmt.Errorf("register: failed to create account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	return user, account, nil
}
