package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/pkg"
)

var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPassword   = errors.New("wrong password")
)

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AccountsRepo struct {
	db *pgxpool.Pool
}

func NewAccountsRepo(db *pgxpool.Pool) *AccountsRepo {
	return &AccountsRepo{
		db: db,
	}
}

func (r *AccountsRepo) Create(ctx context.Context, email, passwordHash string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.create")
	defer func() {
		if err != nil && !errors.Is(err, ErrAccountExists) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	account := &Account{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO account (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`,
		account.ID,
		account.Email,
		account.PasswordHash,
	).Scan(&account.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err, "account_email_key") {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.getByEmail")
	defer func() {
		if err != nil && !errors.Is(err, ErrAccountNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	account := &Account{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, email, password_hash, created_at
			FROM account
			WHERE email = $1
		`, NormalizeEmail(email)).
		Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (r *AccountsRepo) Get(ctx context.Context, id string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.get")
	defer func() {
		if err != nil && !errors.Is(err, ErrAccountNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	account := &Account{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, email, password_hash, created_at
			FROM account
			WHERE id = $1
		`, id).
		Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
