package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/pkg"
)

const (
	DefaultTTL       = 24 * 30 * time.Hour
	sessionKeyPrefix = "ares-session||"
	tokensSetKey     = "ares-sessions"

	fieldCreatedAt = "created_at"
	fieldUserID    = "user_id"
	fieldEmail     = "email"
)

// SessionService keeps login sessions in redis, one hash per token.
type SessionService struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
	// injectable clock, for tests
	Now func() time.Time
}

func NewSessionService(
	ttl time.Duration,
	redisClient *redis.Client,
) *SessionService {
	return &SessionService{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
		Now:            time.Now,
	}
}

func (s *SessionService) Login(ctx context.Context, identity Identity, createdAt time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.sessions.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	cmdHSet := s.redisClient.HSet(ctx, sessionKey,
		fieldCreatedAt, createdAt.Unix(),
		fieldUserID, identity.UserID,
		fieldEmail, identity.Email,
	)
	if err := cmdHSet.Err(); err != nil {
		return "", err
	}

	if err := s.redisClient.Expire(ctx, sessionKey, s.ttl).Err(); err != nil {
		return "", err
	}

	// add token to the set of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

type session struct {
	Identity
	createdAt time.Time
}

func (s *SessionService) get(ctx context.Context, token string) (*session, error) {
	cmd := s.redisClient.HGetAll(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		return nil, err
	}

	fields := cmd.Val()
	if len(fields) == 0 {
		return nil, ErrNotLogged
	}

	createdAtUnix, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse session created at: %w", err)
	}

	return &session{
		Identity: Identity{
			UserID: fields[fieldUserID],
			Email:  fields[fieldEmail],
		},
		createdAt: time.Unix(createdAtUnix, 0),
	}, nil
}

// Authenticate returns the identity behind the token, ErrNotLogged when the
// session is unknown or expired.
func (s *SessionService) Authenticate(ctx context.Context, token string) (_ *Identity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.sessions.authenticate")
	defer func() {
		if errors.Is(err, ErrNotLogged) {
			span.End()
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sess, err := s.get(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.Now().Sub(sess.createdAt) > s.ttl {
		return nil, ErrNotLogged
	}

	return &sess.Identity, nil
}

func (s *SessionService) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	if _, err := s.get(ctx, token); err != nil {
		if errors.Is(err, ErrNotLogged) {
			return false, nil
		}
		return false, err
	}

	if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return false, err
	}

	// remove token from the set of sessions
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return true, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *SessionService) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Infof("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		sess, err := s.get(ctx, token)
		if err != nil {
			if errors.Is(err, ErrNotLogged) {
				// expired by redis already, only the set entry is left
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("=> auth service, scan and clean token: %s", err)
			continue
		}

		if s.Now().Sub(sess.createdAt) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("=> auth service, clean session: %s", err)
			continue
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean session: %s", err)
			continue
		}
	}
	log.Infof("=> auth service, scan and clean done, removed %d sessions", len(toRemove))
}
