package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type accountsRepo interface {
	Create(ctx context.Context, email, passwordHash string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

type sessions interface {
	Login(ctx context.Context, identity Identity, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

const minPasswordLength = 8

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type Handler struct {
	accounts accountsRepo
	sessions sessions
}

func NewHandler(accounts accountsRepo, sessions sessions) *Handler {
	return &Handler{
		accounts: accounts,
		sessions: sessions,
	}
}

// SetupRoutes registers the auth endpoints; mws (rate limiting, CORS) apply to all of them.
func (h *Handler) SetupRoutes(mainRouter *mux.Router, mws ...mux.MiddlewareFunc) {
	authRouter := mainRouter.PathPrefix("/v1/auth").Subrouter()
	authRouter.HandleFunc("/register", h.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authRouter.HandleFunc("/login", h.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", h.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	authRouter.Use(mws...)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(prefix):])
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (*Credentials, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return nil, false
	}

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Errorf("auth, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return nil, false
	}
	creds.Email = NormalizeEmail(creds.Email)

	if creds.Email == "" || !strings.Contains(creds.Email, "@") {
		http.Error(w, "error, email empty or invalid", http.StatusBadRequest)
		return nil, false
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return nil, false
	}
	return &creds, true
}

func (h *Handler) login(ctx context.Context, w http.ResponseWriter, account *Account, status int) {
	token, err := h.sessions.Login(ctx, Identity{UserID: account.ID, Email: account.Email}, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(LoginResponse{
		Token:  token,
		UserID: account.ID,
		Email:  account.Email,
	})
	if err != nil {
		log.Errorf("marshal login response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, status)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	creds, ok := decodeCredentials(w, r)
	if !ok {
		span.SetStatus(codes.Error, "bad-request")
		return
	}
	if len(creds.Password) < minPasswordLength {
		http.Error(w, "error, password too short", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	account, err := h.accounts.Create(ctx, creds.Email, passwordHash)
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			http.Error(w, "error, account already exists", http.StatusConflict)
			return
		}
		log.Errorf("register, create account: %s", err)
		span.RecordError(err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Infof("new account registered: %s", account.ID)
	h.login(ctx, w, account, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	creds, ok := decodeCredentials(w, r)
	if !ok {
		span.SetStatus(codes.Error, "bad-request")
		return
	}

	account, err := h.accounts.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			log.Tracef("[email] failed login attempt for: %s", creds.Email)
			http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
			return
		}
		log.Errorf("login, get account: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(creds.Password, account.PasswordHash) {
		log.Tracef("[password] failed login attempt for: %s", creds.Email)
		http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	}

	h.login(ctx, w, account, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	authToken := BearerToken(r)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := h.sessions.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout failed: %s", err)
		http.Error(w, "no can do", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
