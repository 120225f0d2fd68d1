// Package local implements the Authenticator interface against a
// JSON credentials file in the config directory. Passwords are stored
// as SHA-256 digests, and the active session survives across CLI runs.
package local

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/ports"
)

const (
	usersFile   = "users.json"
	sessionFile = "session.json"
)

// account is the on-disk record for a registered user.
type account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"password_hash"`
	Admin        bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Provider is a file-backed Authenticator.
type Provider struct {
	dir string
	mu  sync.Mutex
}

// NewProvider creates an authenticator persisting under dir.
func NewProvider(dir string) (*Provider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating auth directory: %w", err)
	}
	return &Provider{dir: dir}, nil
}

// Current returns the active session, or nil when signed out.
func (p *Provider) Current(ctx context.Context) (*ports.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(p.dir, sessionFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var user entities.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &ports.Session{User: user}, nil
}

// SignIn resolves credentials against the stored accounts.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	accounts, err := p.loadAccounts()
	if err != nil {
		return nil, err
	}

	normalized := normalizeEmail(email)
	for _, acct := range accounts {
		if normalizeEmail(acct.Email) != normalized {
			continue
		}
		if acct.PasswordHash != hashPassword(password) {
			return nil, fmt.Errorf("checking password: %w", entities.ErrAuthFailed)
		}
		session := &ports.Session{User: acct.user()}
		if err := p.writeSession(session.User); err != nil {
			return nil, err
		}
		return session, nil
	}
	return nil, fmt.Errorf("looking up account %q: %w", normalized, entities.ErrAuthFailed)
}

// SignUp registers a new account and signs it in. The first account
// on the machine becomes an admin.
func (p *Provider) SignUp(ctx context.Context, email, password, displayName string) (*ports.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	normalized := normalizeEmail(email)
	if normalized == "" || !strings.Contains(normalized, "@") {
		return nil, fmt.Errorf("invalid email %q: %w", email, entities.ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", entities.ErrInvalidInput)
	}

	accounts, err := p.loadAccounts()
	if err != nil {
		return nil, err
	}
	for _, acct := range accounts {
		if normalizeEmail(acct.Email) == normalized {
			return nil, fmt.Errorf("account %q already exists: %w", normalized, entities.ErrInvalidInput)
		}
	}

	if displayName == "" {
		displayName = strings.SplitN(normalized, "@", 2)[0]
	}
	acct := account{
		ID:           uuid.New().String(),
		Email:        normalized,
		DisplayName:  displayName,
		PasswordHash: hashPassword(password),
		Admin:        len(accounts) == 0,
		CreatedAt:    time.Now().UTC(),
	}
	accounts = append(accounts, acct)

	if err := p.writeAccounts(accounts); err != nil {
		return nil, err
	}
	session := &ports.Session{User: acct.user()}
	if err := p.writeSession(session.User); err != nil {
		return nil, err
	}
	return session, nil
}

// SignOut discards the active session.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := os.Remove(filepath.Join(p.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

func (p *Provider) loadAccounts() ([]account, error) {
	data, err := os.ReadFile(filepath.Join(p.dir, usersFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}

	var accounts []account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}
	return accounts, nil
}

func (p *Provider) writeAccounts(accounts []account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding accounts: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.dir, usersFile), data, 0o600); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}
	return nil
}

func (p *Provider) writeSession(user entities.User) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.dir, sessionFile), data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (a account) user() entities.User {
	return entities.User{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Admin:       a.Admin,
		CreatedAt:   a.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
