// Package session persists the authenticated session across CLI restarts.
//
// The session is kept in the metadata table under two keys: the JSON user
// record and the bearer token. Both are written and cleared in one
// transaction, so a reader sees either a complete session or none. Accounts
// that finished onboarding get a marker of their own that Clear leaves alone.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skillclip/internal/client/models"
	"github.com/dmitrijs2005/skillclip/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/skillclip/internal/common"
	"github.com/dmitrijs2005/skillclip/internal/dbx"
	"github.com/dmitrijs2005/skillclip/internal/logging"
)

// ErrInvalidSession is returned by Save for sessions that are not well-formed.
var ErrInvalidSession = errors.New("session is not well-formed")

// RepositoryFactory binds a metadata repository to a database handle or to a
// transaction.
type RepositoryFactory func(db dbx.DBTX) metadata.Repository

func newSQLiteRepository(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// SQLiteStore is the SQLite-backed session store.
type SQLiteStore struct {
	db      *sql.DB
	log     logging.Logger
	newRepo RepositoryFactory
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	return NewStore(db, log, newSQLiteRepository)
}

// NewStore is NewSQLiteStore with a custom repository factory.
func NewStore(db *sql.DB, log logging.Logger, newRepo RepositoryFactory) *SQLiteStore {
	return &SQLiteStore{db: db, log: log.With("component", "session_store"), newRepo: newRepo}
}

// Save writes the user record and the token atomically.
func (s *SQLiteStore) Save(ctx context.Context, session *models.Session) error {
	if !session.Valid() {
		return ErrInvalidSession
	}

	record, err := json.Marshal(session)
	if err != nil {
		s.log.Warn(ctx, "session not serializable", "error", err)
		return fmt.Errorf("encode session: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if err := repo.Set(ctx, common.SessionUserKey, record); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionTokenKey, []byte(session.AuthToken))
	})
	if err != nil {
		s.log.Warn(ctx, "session not saved", "error", err)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the persisted session, or nil when there is none. Partial,
// corrupt or malformed records are discarded and reported as nil; storage
// errors are logged and also reported as nil.
func (s *SQLiteStore) Load(ctx context.Context) *models.Session {
	repo := s.newRepo(s.db)

	values, err := repo.GetMany(ctx, common.SessionUserKey, common.SessionTokenKey)
	if err != nil {
		s.log.Warn(ctx, "session not readable", "error", err)
		return nil
	}
	if len(values) == 0 {
		return nil
	}

	record, hasUser := values[common.SessionUserKey]
	token, hasToken := values[common.SessionTokenKey]
	if !hasUser || !hasToken {
		s.discard(ctx, "partial session record")
		return nil
	}

	var session models.Session
	if err := json.Unmarshal(record, &session); err != nil {
		s.discard(ctx, "corrupt session record")
		return nil
	}
	session.AuthToken = string(token)

	if !session.Valid() {
		s.discard(ctx, "malformed session record")
		return nil
	}
	return &session
}

// Clear removes the persisted session. Clearing an empty store is a no-op.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.newRepo(tx).Delete(ctx, common.SessionUserKey, common.SessionTokenKey)
	})
	if err != nil {
		s.log.Warn(ctx, "session not cleared", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MarkOnboarded records that the account finished onboarding on this device.
func (s *SQLiteStore) MarkOnboarded(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidSession
	}
	if err := s.newRepo(s.db).Set(ctx, onboardedKey(userID), []byte("1")); err != nil {
		s.log.Warn(ctx, "onboarding marker not saved", "user_id", userID, "error", err)
		return fmt.Errorf("mark onboarded: %w", err)
	}
	return nil
}

// Onboarded reports whether MarkOnboarded was called for the account. Storage
// errors are logged and reported as false.
func (s *SQLiteStore) Onboarded(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	value, err := s.newRepo(s.db).Get(ctx, onboardedKey(userID))
	if err != nil {
		s.log.Warn(ctx, "onboarding marker not readable", "user_id", userID, "error", err)
		return false
	}
	return value != nil
}

func onboardedKey(userID string) string {
	return common.OnboardedKeyPrefix + userID
}

func (s *SQLiteStore) discard(ctx context.Context, reason string) {
	s.log.Warn(ctx, "discarding persisted session", "reason", reason)
	_ = s.Clear(ctx)
}
