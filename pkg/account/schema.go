package account

// Schema contains the SQL statements to create the account database schema.
const Schema = `
-- Account table: holds the managed account rows.
CREATE TABLE IF NOT EXISTS account (
    id              INTEGER PRIMARY KEY,
    first_name      TEXT,
    last_name       TEXT,
    email           TEXT NOT NULL,
    username        TEXT NOT NULL,
    avatar_filename TEXT
);

-- Usernames are unique regardless of letter case. The index is the
-- commit-time safety net; callers pre-check for a friendlier error path.
CREATE UNIQUE INDEX IF NOT EXISTS account_username_ci_unique
ON account (lower(username));
`

// singletonID is the fixed identity of the managed account row.
const singletonID = 1

// Seed values used to bootstrap the account row when none exists.
const (
	seedFirstName = "Ada"
	seedLastName  = "Lovelace"
	seedEmail     = "ada@example.com"
	seedUsername  = "adal"
)
