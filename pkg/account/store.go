package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"accountd/pkg/models"

	_ "modernc.org/sqlite"
)

// Store manages the singleton account row in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new account store with the given database path. It
// bootstraps the schema, applies additive column migrations and seeds the
// account row if it is missing.
func NewStore(dbPath string) (*Store, error) {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrDatabaseError, err)
	}

	ctx := context.Background()

	// Enable foreign keys
	if _, err := database.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable foreign keys: %w", ErrDatabaseError, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := database.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrDatabaseError, err)
	}

	store := &Store{db: database}
	if err := store.Initialize(); err != nil {
		_ = database.Close()
		return nil, err
	}

	return store, nil
}

// Initialize creates the schema, migrates older layouts and seeds the row.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("%w: failed to initialize schema: %w", ErrDatabaseError, err)
	}

	if err := s.migrateColumns(ctx); err != nil {
		return err
	}

	return s.seed(ctx)
}

// migrateColumns adds the name columns to databases created before they
// existed. Migration is additive only; existing data is never destroyed.
func (s *Store) migrateColumns(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info('account')")
	if err != nil {
		return fmt.Errorf("%w: failed to inspect schema: %w", ErrDatabaseError, err)
	}
	defer func() { _ = rows.Close() }()

	existing := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			columnType string
			notNull    int
			defaultVal sql.NullString
			primaryKey int
		)
		if scanErr := rows.Scan(&cid, &name, &columnType, &notNull, &defaultVal, &primaryKey); scanErr != nil {
			return fmt.Errorf("%w: %w", ErrDatabaseError, scanErr)
		}
		existing[name] = true
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	for _, column := range []string{"first_name", "last_name"} {
		if existing[column] {
			continue
		}
		if _, err := s.db.ExecContext(ctx, "ALTER TABLE account ADD COLUMN "+column+" TEXT"); err != nil {
			return fmt.Errorf("%w: failed to add column %s: %w", ErrDatabaseError, column, err)
		}
	}

	return nil
}

// seed inserts the default account row if the singleton does not exist yet.
func (s *Store) seed(ctx context.Context) error {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM account WHERE id = ?`, singletonID).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO account (id, first_name, last_name, email, username, avatar_filename) VALUES (?, ?, ?, ?, ?, NULL)`,
		singletonID, seedFirstName, seedLastName, seedEmail, seedUsername,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to seed account: %w", ErrDatabaseError, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get retrieves the singleton account row.
func (s *Store) Get() (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(context.Background())
}

// get reads the singleton row. Callers must hold the mutex.
func (s *Store) get(ctx context.Context) (*models.Account, error) {
	record := &models.Account{}
	var (
		firstName sql.NullString
		lastName  sql.NullString
		avatar    sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT first_name, last_name, email, username, avatar_filename FROM account WHERE id = ?`,
		singletonID,
	).Scan(&firstName, &lastName, &record.Email, &record.Username, &avatar)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	record.FirstName = firstName.String
	record.LastName = lastName.String
	record.AvatarFilename = avatar.String

	return record, nil
}

// UpdateProfile overwrites the four profile fields of the singleton row.
// A commit-time violation of the case-insensitive username index is mapped
// to ErrUsernameTaken, covering the window between pre-check and write.
func (s *Store) UpdateProfile(profile models.ProfileUpdate) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`UPDATE account SET first_name = ?, last_name = ?, email = ?, username = ? WHERE id = ?`,
		profile.FirstName, profile.LastName, profile.Email, profile.Username, singletonID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return s.get(ctx)
}

// SetAvatar points the singleton row at a newly stored avatar file.
func (s *Store) SetAvatar(filename string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`UPDATE account SET avatar_filename = ? WHERE id = ?`,
		filename, singletonID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return s.get(ctx)
}

// UsernameIsUnique reports whether the candidate username, compared
// case-insensitively, is free. The singleton's own row is excluded so
// re-submitting the current username never collides.
func (s *Store) UsernameIsUnique(candidate string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRowContext(context.Background(),
		`SELECT COUNT(1) FROM account WHERE lower(username) = lower(?) AND id != ?`,
		candidate, singletonID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return count == 0, nil
}
