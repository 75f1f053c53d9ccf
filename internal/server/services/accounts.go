// Package services contains server-side business logic. AccountService owns
// the account lifecycle: registration, login, token rotation, password and
// role changes. It is the only caller of the identifier allocator.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/cryptox"
	"github.com/infixtech/ixtportal/internal/dbx"
	"github.com/infixtech/ixtportal/internal/logging"
	"github.com/infixtech/ixtportal/internal/server/auth"
	"github.com/infixtech/ixtportal/internal/server/config"
	"github.com/infixtech/ixtportal/internal/server/identifier"
	"github.com/infixtech/ixtportal/internal/server/models"
	"github.com/infixtech/ixtportal/internal/server/repositories/repomanager"
	"github.com/infixtech/ixtportal/internal/server/validation"
)

// IdentifierAllocator hands out role-scoped account identifiers.
type IdentifierAllocator interface {
	Allocate(ctx context.Context, role models.Role) (string, error)
}

// Actor is the authenticated caller, as established by the transport layer.
type Actor struct {
	ID   string
	Role models.Role
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Tokens  *TokenPair
	Account *models.Account
	Landing string
}

type AccountService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	allocator                    IdentifierAllocator
	validator                    *validation.Validator
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, allocator IdentifierAllocator,
	cfg *config.Config, logger logging.Logger) *AccountService {
	return &AccountService{
		db:                           db,
		repomanager:                  m,
		allocator:                    allocator,
		validator:                    validation.New(),
		logger:                       logger.With("service", "accounts"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// RegisterParticipant is the public self-registration path.
func (s *AccountService) RegisterParticipant(ctx context.Context, in models.NewAccount) (*models.Account, error) {
	in = normalizeInput(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if err := s.validator.Password(in.Password); err != nil {
		return nil, err
	}
	// participants pick their own password, so there is nothing to rotate
	return s.createAccount(ctx, in, models.RoleParticipant, in.Password, false)
}

// CreateMember creates a member on an admin's behalf with a generated
// temporary password, which is returned once and must be changed at first
// login.
func (s *AccountService) CreateMember(ctx context.Context, actor Actor, in models.NewAccount) (*models.Account, string, error) {
	admin, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return nil, "", err
	}

	in = normalizeInput(in)
	in.Password = ""
	if err := s.validator.Struct(in); err != nil {
		return nil, "", err
	}

	temp, err := common.GenerateTemporaryPassword()
	if err != nil {
		return nil, "", s.internal(ctx, "temporary password generation failed", err)
	}

	account, err := s.createAccount(ctx, in, models.RoleMember, temp, true)
	if err != nil {
		return nil, "", err
	}

	s.recordActivity(ctx, s.db, &models.ActivityLog{
		ActorID:      admin.ID,
		ActorRole:    admin.Role,
		Action:       models.ActionCreate,
		ResourceType: models.ResourceAccount,
		ResourceID:   account.ID,
		Changes:      []models.FieldChange{{Field: "customId", NewValue: account.CustomID}},
		Description:  "member created: " + account.Email,
	})

	return account, temp, nil
}

// CreateAdmin bootstraps an administrator. It is reachable from the admin
// CLI only.
func (s *AccountService) CreateAdmin(ctx context.Context, in models.NewAccount) (*models.Account, error) {
	in = normalizeInput(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if err := s.validator.Password(in.Password); err != nil {
		return nil, err
	}
	return s.createAccount(ctx, in, models.RoleAdmin, in.Password, false)
}

func (s *AccountService) createAccount(ctx context.Context, in models.NewAccount, role models.Role,
	password string, firstLogin bool) (*models.Account, error) {

	email := normalizeEmail(in.Email)
	repo := s.repomanager.Accounts(s.db)

	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrEmailTaken
	case !errors.Is(err, common.ErrorNotFound):
		return nil, s.internal(ctx, "email lookup failed", err)
	}

	// Check-then-write: the identifier is not reserved between Allocate and
	// Create below.
	customID, err := s.allocator.Allocate(ctx, role)
	if err != nil {
		s.logger.Warn(ctx, "identifier allocation failed", "role", role, "error", err)
		return nil, err
	}

	salt, hash := cryptox.HashPassword(password)
	account := &models.Account{
		Email:        email,
		Role:         role,
		CustomID:     customID,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		DOB:          in.DOB,
		Institution:  strings.TrimSpace(in.Institution),
		Course:       strings.TrimSpace(in.Course),
		Year:         strings.TrimSpace(in.Year),
		Salt:         salt,
		PasswordHash: hash,
		IsFirstLogin: firstLogin,
		IsActive:     true,
	}

	created, err := repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, s.internal(ctx, "account insert failed", err)
	}

	s.logger.Info(ctx, "account created", "account_id", created.ID, "role", role, "custom_id", customID)
	return created, nil
}

// Login verifies credentials and issues a token pair. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same hashing cost as a real check
			cryptox.CheckPassword(password, common.GenerateRandByteArray(cryptox.SaltSize), nil)
			return nil, common.ErrorUnauthorized
		}
		return nil, s.internal(ctx, "account lookup failed", err)
	}

	if !cryptox.CheckPassword(password, account.Salt, account.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}
	if !account.IsActive {
		return nil, common.ErrAccountInactive
	}

	pair, err := s.generateTokenPair(ctx, account, s.db)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := repo.TouchLastLogin(ctx, account.ID, now); err != nil {
		s.logger.Warn(ctx, "last login update failed", "account_id", account.ID, "error", err)
	} else {
		account.LastLoginAt = &now
	}

	return &LoginResult{Tokens: pair, Account: account, Landing: models.Landing(account)}, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *AccountService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, s.internal(ctx, "refresh token lookup failed", err)
	}
	if token.Expires.Before(s.now()) {
		if err := repo.Delete(ctx, refreshToken); err != nil {
			s.logger.Warn(ctx, "expired refresh token cleanup failed", "error", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, s.internal(ctx, "account lookup failed", err)
	}
	if !account.IsActive {
		return nil, common.ErrAccountInactive
	}

	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return nil, s.internal(ctx, "refresh token delete failed", err)
		}
		return s.generateTokenPair(ctx, account, tx)
	})
}

// ChangePassword replaces the password, clears the first-login flag and
// revokes every outstanding refresh token. The returned pair carries the
// updated claims.
func (s *AccountService) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*TokenPair, error) {
	if err := s.validator.Password(newPassword); err != nil {
		return nil, err
	}
	if oldPassword == newPassword {
		return nil, &validation.Error{Fields: map[string]string{"newPassword": "must differ from the current password"}}
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !cryptox.CheckPassword(oldPassword, account.Salt, account.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	salt, hash := cryptox.HashPassword(newPassword)

	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		if err := s.repomanager.Accounts(tx).UpdatePassword(ctx, account.ID, salt, hash); err != nil {
			return nil, s.internal(ctx, "password update failed", err)
		}
		if err := s.repomanager.RefreshTokens(tx).DeleteByAccount(ctx, account.ID); err != nil {
			return nil, s.internal(ctx, "refresh token revoke failed", err)
		}
		account.Salt, account.PasswordHash, account.IsFirstLogin = salt, hash, false
		return s.generateTokenPair(ctx, account, tx)
	})
}

// ChangeRole moves an account to another role. The account gets a freshly
// allocated identifier for the new role; the old one is released, not
// reserved. Allocation happens before the transaction, so a failed
// allocation leaves the account untouched.
func (s *AccountService) ChangeRole(ctx context.Context, actor Actor, accountID string, role models.Role) (*models.Account, error) {
	admin, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidRole, role)
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Role == role {
		return account, nil
	}

	customID, err := s.allocator.Allocate(ctx, role)
	if err != nil {
		s.logger.Warn(ctx, "identifier allocation failed", "role", role, "account_id", account.ID, "error", err)
		return nil, err
	}

	entry := &models.ActivityLog{
		ActorID:      admin.ID,
		ActorRole:    admin.Role,
		Action:       models.ActionUpdate,
		ResourceType: models.ResourceAccount,
		ResourceID:   account.ID,
		Changes: []models.FieldChange{
			{Field: "role", OldValue: string(account.Role), NewValue: string(role)},
			{Field: "customId", OldValue: account.CustomID, NewValue: customID},
		},
		Description: fmt.Sprintf("role changed from %s to %s", account.Role, role),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).UpdateRole(ctx, account.ID, role, customID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return err
			}
			return s.internal(ctx, "role update failed", err)
		}
		if err := s.repomanager.ActivityLogs(tx).Create(ctx, entry); err != nil {
			return s.internal(ctx, "activity log insert failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "role changed", "account_id", account.ID, "from", account.Role, "to", role, "custom_id", customID)

	account.Role = role
	account.CustomID = customID
	return account, nil
}

// DeleteAccount removes an account. Its identifier becomes free for reuse.
func (s *AccountService) DeleteAccount(ctx context.Context, actor Actor, accountID string) error {
	admin, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return err
	}
	if admin.ID == accountID {
		return fmt.Errorf("%w: cannot delete own account", common.ErrPermissionDenied)
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).Delete(ctx, account.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return err
			}
			return s.internal(ctx, "account delete failed", err)
		}
		err := s.repomanager.ActivityLogs(tx).Create(ctx, &models.ActivityLog{
			ActorID:      admin.ID,
			ActorRole:    admin.Role,
			Action:       models.ActionDelete,
			ResourceType: models.ResourceAccount,
			ResourceID:   account.ID,
			Changes:      []models.FieldChange{{Field: "customId", OldValue: account.CustomID}},
			Description:  "account deleted: " + account.Email,
		})
		if err != nil {
			return s.internal(ctx, "activity log insert failed", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "account deleted", "account_id", account.ID, "custom_id", account.CustomID)
	return nil
}

// SetActive activates or deactivates an account. Deactivation also revokes
// the account's refresh tokens, so the next refresh fails.
func (s *AccountService) SetActive(ctx context.Context, actor Actor, accountID string, active bool) (*models.Account, error) {
	admin, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return nil, err
	}
	if admin.ID == accountID {
		return nil, fmt.Errorf("%w: cannot change own account status", common.ErrPermissionDenied)
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsActive == active {
		return account, nil
	}

	verb := "Deactivated"
	if active {
		verb = "Activated"
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).SetActive(ctx, account.ID, active); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return err
			}
			return s.internal(ctx, "account status update failed", err)
		}
		if !active {
			if err := s.repomanager.RefreshTokens(tx).DeleteByAccount(ctx, account.ID); err != nil {
				return s.internal(ctx, "refresh token revoke failed", err)
			}
		}
		err := s.repomanager.ActivityLogs(tx).Create(ctx, &models.ActivityLog{
			ActorID:      admin.ID,
			ActorRole:    admin.Role,
			Action:       models.ActionUpdate,
			ResourceType: models.ResourceAccount,
			ResourceID:   account.ID,
			Changes: []models.FieldChange{{
				Field:    "isActive",
				OldValue: strconv.FormatBool(account.IsActive),
				NewValue: strconv.FormatBool(active),
			}},
			Description: fmt.Sprintf("%s user: %s", verb, account.Name),
		})
		if err != nil {
			return s.internal(ctx, "activity log insert failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account status changed", "account_id", account.ID, "active", active)

	account.IsActive = active
	return account, nil
}

// UpdateAccount lets an admin correct an account's identifier and joined
// date. A new identifier must carry the prefix of the account's role and
// must not be held by another account.
func (s *AccountService) UpdateAccount(ctx context.Context, actor Actor, accountID string, in models.AccountUpdate) (*models.Account, error) {
	admin, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return nil, err
	}

	in.CustomID = strings.ToUpper(strings.TrimSpace(in.CustomID))
	in.JoinedDate = strings.TrimSpace(in.JoinedDate)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	customID, joined := account.CustomID, account.CreatedAt
	var changes []models.FieldChange

	if in.CustomID != "" && in.CustomID != account.CustomID {
		role, _, err := identifier.Parse(in.CustomID)
		if err != nil {
			return nil, &validation.Error{Fields: map[string]string{"customId": "must look like PREFIX-1234"}}
		}
		if role != account.Role {
			return nil, &validation.Error{Fields: map[string]string{
				"customId": fmt.Sprintf("prefix must be %s for role %s", account.Role.Prefix(), account.Role),
			}}
		}
		taken, err := s.repomanager.Accounts(s.db).CustomIDExists(ctx, in.CustomID)
		if err != nil {
			return nil, s.internal(ctx, "identifier lookup failed", err)
		}
		if taken {
			return nil, &validation.Error{Fields: map[string]string{"customId": "already assigned to another account"}}
		}
		changes = append(changes, models.FieldChange{Field: "customId", OldValue: account.CustomID, NewValue: in.CustomID})
		customID = in.CustomID
	}

	if in.JoinedDate != "" {
		d, err := time.Parse(time.DateOnly, in.JoinedDate)
		if err != nil {
			return nil, &validation.Error{Fields: map[string]string{"joinedDate": "must be a date in YYYY-MM-DD format"}}
		}
		if old := account.CreatedAt.UTC().Format(time.DateOnly); old != in.JoinedDate {
			changes = append(changes, models.FieldChange{Field: "joinedDate", OldValue: old, NewValue: in.JoinedDate})
			joined = d
		}
	}

	if len(changes) == 0 {
		return account, nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).UpdateIdentity(ctx, account.ID, customID, joined); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return err
			}
			return s.internal(ctx, "account update failed", err)
		}
		err := s.repomanager.ActivityLogs(tx).Create(ctx, &models.ActivityLog{
			ActorID:      admin.ID,
			ActorRole:    admin.Role,
			Action:       models.ActionUpdate,
			ResourceType: models.ResourceAccount,
			ResourceID:   account.ID,
			Changes:      changes,
			Description:  fmt.Sprintf("Updated %s's ID and joined date", account.Name),
		})
		if err != nil {
			return s.internal(ctx, "activity log insert failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	account.CustomID, account.CreatedAt = customID, joined
	return account, nil
}

// GetAccount returns an account to itself or to an admin.
func (s *AccountService) GetAccount(ctx context.Context, actor Actor, accountID string) (*models.Account, error) {
	if actor.ID == "" {
		return nil, common.ErrorUnauthorized
	}
	if actor.ID != accountID {
		if _, err := s.requireAdmin(ctx, actor); err != nil {
			return nil, err
		}
	}
	return s.getAccount(ctx, accountID)
}

// ListAccounts lists accounts of one role, or all of them for an empty role.
func (s *AccountService) ListAccounts(ctx context.Context, actor Actor, role models.Role) ([]*models.Account, error) {
	if _, err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidRole, role)
	}

	list, err := s.repomanager.Accounts(s.db).ListByRole(ctx, role)
	if err != nil {
		return nil, s.internal(ctx, "account list failed", err)
	}
	return list, nil
}

// ListActivity returns the audit trail of one account, newest first.
func (s *AccountService) ListActivity(ctx context.Context, actor Actor, accountID string) ([]*models.ActivityLog, error) {
	if _, err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	list, err := s.repomanager.ActivityLogs(s.db).ListByResource(ctx, models.ResourceAccount, accountID)
	if err != nil {
		return nil, s.internal(ctx, "activity list failed", err)
	}
	return list, nil
}

// AllocateIdentifier exposes the allocator directly. Any authenticated
// caller may draw a participant identifier; other roles need an admin.
// Nothing is persisted.
func (s *AccountService) AllocateIdentifier(ctx context.Context, actor Actor, role models.Role) (string, error) {
	if actor.ID == "" {
		return "", common.ErrorUnauthorized
	}
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidRole, role)
	}
	if role != models.RoleParticipant {
		if _, err := s.requireAdmin(ctx, actor); err != nil {
			return "", err
		}
	}
	return s.allocator.Allocate(ctx, role)
}

// requireAdmin checks the actor's role against the store rather than the
// token, so a demoted admin loses access before the token expires.
func (s *AccountService) requireAdmin(ctx context.Context, actor Actor) (*models.Account, error) {
	if actor.ID == "" {
		return nil, common.ErrorUnauthorized
	}
	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, s.internal(ctx, "actor lookup failed", err)
	}
	if account.Role != models.RoleAdmin || !account.IsActive {
		return nil, common.ErrPermissionDenied
	}
	return account, nil
}

func (s *AccountService) getAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, "account lookup failed", err)
	}
	return account, nil
}

func (s *AccountService) recordActivity(ctx context.Context, db dbx.DBTX, entry *models.ActivityLog) {
	if err := s.repomanager.ActivityLogs(db).Create(ctx, entry); err != nil {
		s.logger.Warn(ctx, "activity log insert failed", "resource_id", entry.ResourceID, "error", err)
	}
}

// internal logs err and hides it behind common.ErrorInternal.
func (s *AccountService) internal(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return common.ErrorInternal
}

func (s *AccountService) generateAccessToken(account *models.Account) (string, error) {
	return auth.GenerateToken(account, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *AccountService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *AccountService) generateTokenPair(ctx context.Context, account *models.Account, db dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(account)
	if err != nil {
		return nil, s.internal(ctx, "access token signing failed", err)
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, s.internal(ctx, "refresh token generation failed", err)
	}
	expires := s.now().Add(s.refreshTokenValidityDuration)
	if err := s.repomanager.RefreshTokens(db).Create(ctx, account.ID, refresh, expires); err != nil {
		return nil, s.internal(ctx, "refresh token insert failed", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeInput trims the free-text fields and canonicalizes the email, so
// validation sees what will be stored. The password is left as typed.
func normalizeInput(in models.NewAccount) models.NewAccount {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.DOB = strings.TrimSpace(in.DOB)
	in.Institution = strings.TrimSpace(in.Institution)
	in.Course = strings.TrimSpace(in.Course)
	in.Year = strings.TrimSpace(in.Year)
	return in
}
