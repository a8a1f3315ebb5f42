package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/domain/repository"
	pkgAuth "github.com/polkiloo/routemanager/internal/pkg/auth"
)

const minPasswordLength = 6

// AuthUseCase handles operator accounts and session tokens.
type AuthUseCase struct {
	operators repository.OperatorRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(operators repository.OperatorRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{operators: operators, hasher: hasher, tokens: strategy}
}

// Register creates an operator and returns a session token for it.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*model.Operator, string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, "", domainErrors.Validation("login", "must not be empty")
	}
	if len(password) < minPasswordLength {
		return nil, "", domainErrors.Validation("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	op, err := u.operators.Create(ctx, login, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(op.ID)
	if err != nil {
		return nil, "", err
	}
	return op, token, nil
}

// Authenticate validates credentials and returns a session token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Operator, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	op, err := u.operators.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Verify(op.PasswordHash, password); err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordMismatch) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("verify password: %w", err)
	}

	token, err := u.tokens.IssueToken(op.ID)
	if err != nil {
		return nil, "", err
	}
	return op, token, nil
}

// ParseToken returns the operator ID carried by token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return 0, err
	}
	return claims.OperatorID, nil
}

// GetByID fetches operator by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.Operator, error) {
	return u.operators.GetByID(ctx, id)
}
