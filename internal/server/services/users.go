// Package services contains server-side business logic. This file implements
// UserService, which checks credentials, issues session tokens and provisions
// the site accounts.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/auth"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/repomanager"
)

// LoginResult is a verified identity and the signed token carrying it.
type LoginResult struct {
	Identity auth.Identity
	Token    string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService) *UserService {
	return &UserService{db: db, repomanager: m, tokens: tokens}
}

// dummyHash is compared against when the user does not exist, so an unknown
// username costs the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, err := auth.HashPassword("robotika-missing-user")
	if err != nil {
		panic(err)
	}
	return h
})

// Login verifies userName and password and issues a token. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	if userName == "" || password == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.VerifyPassword(password, dummyHash())
			return nil, common.ErrorUnauthorized
		}
		return nil, errors.Join(common.ErrorInternal, err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}
	if !user.Role.Valid() {
		return nil, common.ErrorUnauthorized
	}

	identity := auth.Identity{ID: user.ID, Username: user.UserName, Role: user.Role}
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, errors.Join(common.ErrorInternal, err)
	}

	return &LoginResult{Identity: identity, Token: token}, nil
}

// CreateOrReplaceUser stores userName with a fresh hash of password. An
// existing account keeps its ID and gets the new hash and role.
// The caller owns password and may wipe it as soon as this returns.
func (s *UserService) CreateOrReplaceUser(ctx context.Context, userName string, password []byte, role models.Role) (*models.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || len(password) == 0 || !role.Valid() {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPasswordBytes(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	var stored *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		u, err := repo.UpdateCredentials(ctx, userName, hash, role)
		if errors.Is(err, common.ErrorNotFound) {
			u, err = repo.Create(ctx, &models.User{UserName: userName, PasswordHash: hash, Role: role})
		}
		if err != nil {
			return err
		}
		stored = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return stored, nil
}
