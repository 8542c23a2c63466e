// Package user implements the user-account model on top of the
// database facade. The facade is injected at construction and every
// statement goes through named markers with typed bindings.
package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/gaborage/go-appkit/database"
)

// User is one user account row.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Token        string
	Active       bool
	CreatedAt    time.Time
}

var (
	// ErrInvalidInput is returned when account fields fail validation.
	ErrInvalidInput = errors.New("invalid user input")

	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("user not found")
)

// userFromRow maps an ASSOC-shaped row onto a User.
func userFromRow(row database.Row) (User, error) {
	u := User{}

	var err error
	if u.ID, err = fieldInt64(row, "id"); err != nil {
		return User{}, err
	}
	if u.Username, err = fieldString(row, "username"); err != nil {
		return User{}, err
	}
	if u.Email, err = fieldString(row, "email"); err != nil {
		return User{}, err
	}
	if u.PasswordHash, err = fieldString(row, "password_hash"); err != nil {
		return User{}, err
	}
	if u.Token, err = fieldString(row, "token"); err != nil {
		return User{}, err
	}
	if u.Active, err = fieldBool(row, "active"); err != nil {
		return User{}, err
	}
	if t, ok := row.Fields["created_at"].(time.Time); ok {
		u.CreatedAt = t
	}

	return u, nil
}

func fieldString(row database.Row, name string) (string, error) {
	if s, ok := row.Fields[name].(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("column %s: unexpected type %T", name, row.Fields[name])
}

func fieldInt64(row database.Row, name string) (int64, error) {
	switch v := row.Fields[name].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("column %s: unexpected type %T", name, row.Fields[name])
	}
}

func fieldBool(row database.Row, name string) (bool, error) {
	if b, ok := row.Fields[name].(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("column %s: unexpected type %T", name, row.Fields[name])
}
