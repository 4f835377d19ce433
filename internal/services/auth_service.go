package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"botfolio/internal/docstore"
	apperrors "botfolio/internal/errors"
	"botfolio/internal/logger"
	"botfolio/internal/models"
)

// operator is one entry of the fixed back-office allow-list.
type operator struct {
	username     string
	passwordHash []byte
	displayName  string
	role         models.Role
}

// authService handles operator authentication against the fixed allow-list.
// There is no self-service registration; the two accounts are the product.
type authService struct {
	store     docstore.Store
	logs      ActivityLogServicer
	operators []operator
}

// NewAuthService creates a new AuthServicer. Allow-list password hashes are
// derived at construction so plaintext never lives past startup.
func NewAuthService(store docstore.Store, logs ActivityLogServicer) AuthServicer {
	return &authService{
		store: store,
		logs:  logs,
		operators: []operator{
			mustOperator("admin", "TradingBots2025!", "Administrator", models.RoleAdmin),
			mustOperator("manager", "Manager2025!", "Manager", models.RoleManager),
		},
	}
}

func mustOperator(username, password, displayName string, role models.Role) operator {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost; unreachable with DefaultCost
		panic(err)
	}
	return operator{username: username, passwordHash: hash, displayName: displayName, role: role}
}

// Login verifies credentials against the allow-list. Success persists the
// session record and emits a login activity entry; failure returns the same
// generic error for unknown usernames and wrong passwords, and logs nothing.
func (s *authService) Login(username, password string) (*models.Session, error) {
	var op *operator
	for i := range s.operators {
		if s.operators[i].username == username {
			op = &s.operators[i]
			break
		}
	}
	if op == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(op.passwordHash, []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	session := &models.Session{
		Username:    op.username,
		DisplayName: op.displayName,
		Role:        op.role,
		LoginTime:   time.Now(),
	}
	if err := s.store.Put(docstore.KeySession, session); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.logs.Append(op.displayName, models.ActionLogin, "User logged in successfully"); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout clears the persisted session and emits a logout activity entry.
func (s *authService) Logout(session *models.Session) error {
	if err := s.store.Delete(docstore.KeySession); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	_, err := s.logs.Append(session.DisplayName, models.ActionLogout, "User logged out")
	return err
}

// RestoreSession returns the persisted session record, if any. A malformed
// record is cleared and the caller starts unauthenticated.
func (s *authService) RestoreSession() (*models.Session, error) {
	var session models.Session
	found, err := s.store.Get(docstore.KeySession, &session)
	if err != nil {
		if errors.Is(err, docstore.ErrCorrupt) {
			logger.Get().Warnw("session document corrupt, clearing", "error", err.Error())
			if delErr := s.store.Delete(docstore.KeySession); delErr != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, delErr)
			}
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found {
		return nil, apperrors.ErrUnauthorized
	}
	return &session, nil
}
