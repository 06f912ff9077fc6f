package migrations

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readInitMigration(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	return string(data)
}

// createTableBlock extracts the column list of one CREATE TABLE statement
func createTableBlock(t *testing.T, schema, table string) string {
	t.Helper()
	re := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS ` + table + ` \((.*?)\);`)
	match := re.FindStringSubmatch(schema)
	require.NotNil(t, match, "no CREATE TABLE for %s", table)
	return match[1]
}

// The lazily-created profile and settings rows are read back with
// RETURNING ... updated_at and written with SET updated_at = NOW(); the
// schema has to carry every column those statements reference.
func TestInitMigrationProfileColumns(t *testing.T) {
	schema := readInitMigration(t)

	profiles := createTableBlock(t, schema, "profiles")
	for _, col := range []string{"user_id", "bio", "location", "field", "avatar_url", "updated_at"} {
		assert.Contains(t, profiles, col, "profiles column %s", col)
	}

	settings := createTableBlock(t, schema, "settings")
	for _, col := range []string{"user_id", "profile_visible", "notifications_enabled", "language", "updated_at"} {
		assert.Contains(t, settings, col, "settings column %s", col)
	}
}

func TestInitMigrationUserColumns(t *testing.T) {
	schema := readInitMigration(t)

	users := createTableBlock(t, schema, "users")
	for _, col := range []string{"id", "email", "password", "username", "full_name", "is_admin", "created_at", "updated_at"} {
		assert.Contains(t, users, col, "users column %s", col)
	}
}
