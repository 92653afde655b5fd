package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the normalized role of an authenticated operator. Only values
// produced by NormalizeRole are ever stored in an Identity.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleOperator
)

// legacyOperatorRole is the backend's older name for RoleOperator.
const legacyOperatorRole = "receptionist"

var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrInvalidIdentity = errors.New("invalid identity")
)

// NormalizeRole maps the backend role vocabulary onto Role. The legacy
// "Receptionist" name (in any letter case) becomes RoleOperator.
func NormalizeRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, nil
	case "operator", legacyOperatorRole:
		return RoleOperator, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleOperator:
		return "Operator"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the normalized roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(r.String()), nil
}

// UnmarshalText normalizes on decode, so a legacy role name can never be
// held in a Role value.
func (r *Role) UnmarshalText(b []byte) error {
	role, err := NormalizeRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Identity is the authenticated principal held by the session store.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Token   string `json:"-"`
	LabID   string `json:"labId,omitempty"`
	LabName string `json:"labName,omitempty"`

	// ReportedRole is the role exactly as the backend delivered it. It is
	// persisted with the identity record and never inspected by business logic.
	ReportedRole string `json:"-"`
}

// Validate checks the invariants every active identity must satisfy.
func (i Identity) Validate() error {
	if i.Token == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidIdentity)
	}
	if !i.Role.Valid() {
		return fmt.Errorf("%w: role %s", ErrInvalidIdentity, i.Role)
	}
	return nil
}

// Is reports whether the identity holds one of roles.
func (i *Identity) Is(roles ...Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
