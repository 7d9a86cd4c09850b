package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/storage"
)

const userColumns = `id, username, first_name, last_name, password_hash, created_at`

// CreateUser inserts a new user into the database.
// Username uniqueness is enforced by the insert itself, so two concurrent
// registrations for one name cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO users (id, username, first_name, last_name, password_hash, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`),
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.CreatedAt,
		nextSeq(),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if n == 0 {
		return storage.ErrUsernameTaken
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	if err := s.hydrateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+userColumns+` FROM users WHERE username = ?`), username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := s.hydrateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every user in registration order.
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	// Rows are drained before hydrating; the SQLite pool holds a single connection.
	for _, user := range users {
		if err := s.hydrateUser(ctx, user); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// GetUsersByIDs retrieves multiple users by their IDs.
// Returns a map of user ID to User object.
// Users that don't exist are omitted from the result.
// Friend and group lists are not loaded.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	if len(ids) == 0 {
		return make(map[string]*models.User), nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id IN (` + placeholders(len(ids)) + `)`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	list, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}

	users := make(map[string]*models.User, len(list))
	for _, user := range list {
		users[user.ID] = user
	}
	return users, nil
}

// hydrateUser loads the friend list and owned group IDs.
func (s *Store) hydrateUser(ctx context.Context, user *models.User) error {
	friends, err := s.ListFriendIDs(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Friends = friends

	rows, err := s.db.QueryContext(ctx, s.q(`SELECT id FROM groups WHERE owner_id = ? ORDER BY seq, id`), user.ID)
	if err != nil {
		return fmt.Errorf("failed to get owned groups: %w", err)
	}
	groups, err := scanIDs(rows)
	if err != nil {
		return fmt.Errorf("failed to scan owned groups: %w", err)
	}
	user.Groups = groups
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return user, nil
}

func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
