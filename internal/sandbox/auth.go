package sandbox

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/diaglab/labdesk/internal/core/domain"
)

// User is a sandbox account. Role is delivered verbatim to clients, legacy
// spellings included.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	Role         string
	PasswordHash []byte
}

// Account seeds a sandbox user.
type Account struct {
	Username string
	Password string
	Name     string
	Email    string
	Role     string
}

// DefaultAccounts are the users every sandbox starts with. The front desk
// account carries the legacy Receptionist role; the technician account has
// a role the portal does not support.
var DefaultAccounts = []Account{
	{Username: "admin", Password: "admin123", Name: "Lab Admin", Email: "admin@diaglab.test", Role: "Admin"},
	{Username: "frontdesk", Password: "frontdesk123", Name: "Front Desk", Email: "frontdesk@diaglab.test", Role: "Receptionist"},
	{Username: "tech", Password: "tech123", Name: "Bench Technician", Email: "tech@diaglab.test", Role: "Technician"},
}

// Authenticator issues and verifies HS256 tokens for sandbox users.
type Authenticator struct {
	users    map[string]*User
	secret   []byte
	tokenTTL time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewAuthenticator(accounts []Account, secret string, tokenTTL time.Duration, cost int) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("sandbox jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	a := &Authenticator{
		users:    make(map[string]*User, len(accounts)),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		revoked:  map[string]time.Time{},
	}
	for _, acc := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", acc.Username, err)
		}
		a.users[strings.ToLower(acc.Username)] = &User{
			ID:           uuid.NewString(),
			Username:     acc.Username,
			Name:         acc.Name,
			Email:        acc.Email,
			Role:         acc.Role,
			PasswordHash: hash,
		}
	}
	return a, nil
}

// Login checks the password and returns a signed token.
func (a *Authenticator) Login(username, password string) (string, *User, error) {
	user, ok := a.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := a.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (a *Authenticator) generateToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(a.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.secret)
}

// Revoke invalidates a token id until its natural expiry.
func (a *Authenticator) Revoke(jti string, exp time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	for id, until := range a.revoked {
		if now.After(until) {
			delete(a.revoked, id)
		}
	}
	a.revoked[jti] = exp
}

func (a *Authenticator) isRevoked(jti string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.revoked[jti]
	return ok
}

// Authenticate validates the bearer JWT and injects its claims into context.
func (a *Authenticator) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return a.secret, nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			jti, _ := claims["jti"].(string)
			if jti == "" || a.isRevoked(jti) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}

			c.Set("user_id", claims["sub"])
			c.Set("username", claims["username"])
			c.Set("role", claims["role"])
			c.Set("jti", jti)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set("exp", exp.Time)
			}

			return next(c)
		}
	}
}

// RequireRole enforces role-based access control on sandbox routes. Role
// names compare case-insensitively.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[strings.ToLower(role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
