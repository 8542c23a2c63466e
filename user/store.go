package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gaborage/go-appkit/database"
	"github.com/gaborage/go-appkit/logger"
	"github.com/gaborage/go-appkit/validation"
)

const (
	minPasswordLen = 8
	minUsernameLen = 3
	maxUsernameLen = 32

	userColumns = "id, username, email, password_hash, token, active, created_at"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Store issues user-account queries through an injected database
// facade. It never reaches for ambient shared state.
type Store struct {
	db  *database.DB
	log logger.Logger
}

// NewStore creates a user store bound to the given facade.
func NewStore(db *database.DB, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// Create validates the account fields, hashes the password, and
// inserts the account. It returns the database-generated identifier.
func (s *Store) Create(ctx context.Context, username, email, password string) (int64, error) {
	if !validation.Str(&username, minUsernameLen, maxUsernameLen, usernamePattern) {
		return 0, fmt.Errorf("%w: username", ErrInvalidInput)
	}
	if !validation.IsEmail(email) {
		return 0, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return 0, fmt.Errorf("%w: password too short", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.db.Create(ctx,
		`INSERT INTO users (username, email, password_hash, token, active)
		 VALUES (:username, :email, :password_hash, :token, :active)
		 RETURNING id`,
		[]database.Binding{
			database.String(":username", username),
			database.String(":email", email),
			database.String(":password_hash", string(hash)),
			database.String(":token", uuid.NewString()),
			database.Bool(":active", true),
		}, true)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("user_id", id).Str("username", username).Msg("User account created")
	return id, nil
}

// ByID fetches one account by its identifier.
func (s *Store) ByID(ctx context.Context, id int64) (User, error) {
	row, err := s.db.ReadOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = :id",
		[]database.Binding{database.Int(":id", id)}, database.FetchAssoc)
	if err != nil {
		return User{}, mapNoRows(err)
	}
	return userFromRow(row)
}

// ByUsername fetches one account by username.
func (s *Store) ByUsername(ctx context.Context, username string) (User, error) {
	row, err := s.db.ReadOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = :username",
		[]database.Binding{database.String(":username", username)}, database.FetchAssoc)
	if err != nil {
		return User{}, mapNoRows(err)
	}
	return userFromRow(row)
}

// EmailByID returns only the email column for an account.
func (s *Store) EmailByID(ctx context.Context, id int64) (string, error) {
	v, err := s.db.ReadColumn(ctx,
		"SELECT email FROM users WHERE id = :id",
		[]database.Binding{database.Int(":id", id)})
	if err != nil {
		return "", mapNoRows(err)
	}

	email, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("column email: unexpected type %T", v)
	}
	return email, nil
}

// Authenticate checks a username/password pair. A wrong password or an
// unknown username is a normal negative result, not an error, and is
// not logged.
func (s *Store) Authenticate(ctx context.Context, username, password string) (User, bool, error) {
	u, err := s.ByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, false, nil
	}

	return u, true, nil
}

// ChangePassword replaces the password after verifying the old one.
// An old-credential mismatch is a normal negative result.
func (s *Store) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) (bool, error) {
	u, err := s.ByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return false, nil
	}

	if len(newPassword) < minPasswordLen {
		return false, fmt.Errorf("%w: password too short", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	if err := s.db.Update(ctx,
		"UPDATE users SET password_hash = :password_hash WHERE id = :id",
		[]database.Binding{
			database.String(":password_hash", string(hash)),
			database.Int(":id", id),
		}); err != nil {
		return false, err
	}

	return true, nil
}

// SetActive flips the account's active flag.
func (s *Store) SetActive(ctx context.Context, id int64, active bool) error {
	return s.db.Update(ctx,
		"UPDATE users SET active = :active WHERE id = :id",
		[]database.Binding{
			database.Bool(":active", active),
			database.Int(":id", id),
		})
}

// Delete removes the account.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.db.Delete(ctx,
		"DELETE FROM users WHERE id = :id",
		[]database.Binding{database.Int(":id", id)})
}

// List returns accounts ordered by identifier. The query text comes
// from the named-marker builder; the arguments still travel as
// explicit typed bindings.
func (s *Store) List(ctx context.Context, onlyActive bool, limit, offset uint64) ([]User, error) {
	qb := database.Builder().
		Select("id", "username", "email", "password_hash", "token", "active", "created_at").
		From("users").
		OrderBy("id")

	var bindings []database.Binding
	if onlyActive {
		qb = qb.Where(sq.Eq{"active": true})
		bindings = append(bindings, database.Bool(database.Marker(1), true))
	}
	if limit > 0 {
		qb = qb.Limit(limit)
	}
	if offset > 0 {
		qb = qb.Offset(offset)
	}

	query, _, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.ReadAll(ctx, query, bindings, database.FetchAssoc)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		u, err := userFromRow(row)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func mapNoRows(err error) error {
	if errors.Is(err, database.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
