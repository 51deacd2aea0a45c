package credentials

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Session lifetimes. Access tokens rotate well before the refresh window
// closes so clients refresh instead of re-authenticating.
const (
	SessionAccessTokenTTL  = 30 * 24 * time.Hour
	SessionRefreshTokenTTL = 365 * 24 * time.Hour
)

const sessionTokenBytes = 32

type Sessions interface {
	repository.Repository[*Session]

	Issue(ctx context.Context, session *Session) (*Session, error)
	IssueTx(ctx context.Context, tx bun.IDB, session *Session) (*Session, error)

	GetByAccessToken(ctx context.Context, token string) (*Session, error)
	GetByAccessTokenTx(ctx context.Context, tx bun.IDB, token string) (*Session, error)
}

type sessions struct {
	repository.Repository[*Session]
	db *bun.DB
}

var (
	_ Sessions                        = (*sessions)(nil)
	_ SessionStore                    = (*sessions)(nil)
	_ repository.Repository[*Session] = (*sessions)(nil)
)

func NewSessionsRepository(db *bun.DB) Sessions {
	repo := repository.NewRepository[*Session](db, repository.ModelHandlers[*Session]{
		NewRecord: func() *Session { return &Session{} },
		GetID: func(s *Session) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Session, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
		GetIdentifier: func() string {
			return "access_token"
		},
	})

	return &sessions{
		Repository: repo,
		db:         db,
	}
}

func (a *sessions) Issue(ctx context.Context, session *Session) (*Session, error) {
	return a.IssueTx(ctx, a.db, session)
}

// IssueTx assigns token material and expirations, then persists the record.
// Callers never pick their own tokens.
func (a *sessions) IssueTx(ctx context.Context, tx bun.IDB, session *Session) (*Session, error) {
	if err := prepareSessionDefaults(session); err != nil {
		return nil, err
	}
	return a.Repository.CreateTx(ctx, tx, session)
}

func (a *sessions) GetByAccessToken(ctx context.Context, token string) (*Session, error) {
	return a.GetByAccessTokenTx(ctx, a.db, token)
}

// GetByAccessTokenTx resolves a live session by access token. Sessions past
// their access expiration are treated as absent; they never authenticate.
func (a *sessions) GetByAccessTokenTx(ctx context.Context, tx bun.IDB, token string) (*Session, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, repository.NewRecordNotFound()
	}

	record := &Session{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.access_token = ?", trimmed).
		Where("(?TableAlias.access_expiration IS NULL OR ?TableAlias.access_expiration > ?)", time.Now()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return record, nil
}

func prepareSessionDefaults(record *Session) error {
	if record == nil {
		return repository.NewRecordNotFound()
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.AccessToken == "" {
		token, err := newSessionToken()
		if err != nil {
			return err
		}
		record.AccessToken = token
	}

	if record.RefreshToken == "" {
		token, err := newSessionToken()
		if err != nil {
			return err
		}
		record.RefreshToken = token
	}

	now := time.Now()
	if record.AccessExpiration == nil {
		exp := now.Add(SessionAccessTokenTTL)
		record.AccessExpiration = &exp
	}
	if record.RefreshExpiration == nil {
		exp := now.Add(SessionRefreshTokenTTL)
		record.RefreshExpiration = &exp
	}

	return nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
