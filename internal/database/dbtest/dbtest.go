// Package dbtest opens the Postgres database used by store tests.
//
// Store tests run only when BIZTIME_TEST_DATABASE_URL points at a database
// they may write to, e.g.
//
//	BIZTIME_TEST_DATABASE_URL=postgres://postgres:@localhost:5432/biztime_test?sslmode=disable go test ./...
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/biztime/internal/database"
)

const EnvDSN = "BIZTIME_TEST_DATABASE_URL"

// Open connects to the test database and applies the migrations, skipping the
// test when EnvDSN is unset.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvDSN)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, dsn, database.DefaultPoolOptions)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))

	return db
}

// Code returns a code unique to this run. Packages test in parallel against
// the same database, so tests never truncate and never reuse codes.
func Code(prefix string) string {
	return prefix + "-" + strings.ToLower(uuid.NewString()[:8])
}

// SeedCompany inserts a company row directly and returns its code.
func SeedCompany(t testing.TB, db *sql.DB) string {
	t.Helper()

	code := Code("co")

	_, err := db.Exec(`INSERT INTO companies (code, name, description) VALUES ($1, $2, '')`, code, "Company "+code)
	require.NoError(t, err)

	return code
}

// SeedIndustry inserts an industry row directly and returns its code.
func SeedIndustry(t testing.TB, db *sql.DB) string {
	t.Helper()

	code := Code("ind")

	_, err := db.Exec(`INSERT INTO industries (code, industry) VALUES ($1, $2)`, code, "Industry "+code)
	require.NoError(t, err)

	return code
}
