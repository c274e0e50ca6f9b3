package migrate_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/pkg/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	require.NoError(t, err)
	require.Len(t, matches, 1, "expected one %s migration", suffix)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "create_inventory")
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS inventory",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_code",
		"blocked_dates jsonb NOT NULL DEFAULT '[]'::jsonb",
		"version integer NOT NULL DEFAULT 1",
		"'pending_third_party'",
		"DROP TABLE IF EXISTS inventory",
	} {
		assert.Contains(t, content, sub)
	}
}

func TestProposalMigrationsContainSchemas(t *testing.T) {
	proposals := readMigration(t, "create_proposals")
	assert.Contains(t, proposals, "FOREIGN KEY (proposal_id) REFERENCES proposals(id) ON DELETE CASCADE")
	assert.Contains(t, proposals, "CHECK (status IN ('draft', 'sent', 'approved', 'rejected'))")

	drafts := readMigration(t, "create_proposal_drafts")
	assert.Contains(t, drafts, "kind text PRIMARY KEY CHECK (kind IN ('pending', 'rich'))")
}

func TestAuditMigrationListsEveryEventType(t *testing.T) {
	content := readMigration(t, "create_audit_logs")
	for _, eventType := range []string{
		"email_sent", "proposal_generated", "proposal_pending_pdf", "proposal_rich_pending",
		"proposal_pdf_generated", "availability_changed", "third_party_request", "price_calculated", "pdf_generated",
	} {
		assert.Contains(t, content, "'"+eventType+"'")
	}
}

func TestValidateDirAcceptsRepositoryMigrations(t *testing.T) {
	require.NoError(t, migrate.ValidateDir("migrations"))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "create_things.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, migrate.ValidateDir(dir))
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Partner Regions")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_partner_regions.sql"))
	require.NoError(t, migrate.ValidateDir(dir))
}

func TestValidateFSRejectsUnbalancedStatements(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301120000_broken.sql"), []byte(body), 0o644))
	assert.ErrorContains(t, migrate.ValidateDir(dir), "StatementBegin")

	swapped := "-- +goose Down\nSELECT 1;\n-- +goose Up\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301120000_broken.sql"), []byte(swapped), 0o644))
	assert.ErrorContains(t, migrate.ValidateDir(dir), "Down before Up")
}

func TestMigrationFileName(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 5, 7, 0, time.FixedZone("ART", -3*3600))
	name, err := migrate.MigrationFileName("Add Partner Regions!", now)
	require.NoError(t, err)
	assert.Equal(t, "20260302120507_add_partner_regions.sql", name)

	_, err = migrate.MigrationFileName("!!!", now)
	assert.Error(t, err)
}

func TestEmbeddedMigrationsValidate(t *testing.T) {
	require.NoError(t, migrate.ValidateDir(migrate.EmbeddedDir))
}

func TestEmbeddedMatchesDisk(t *testing.T) {
	embedded, err := fs.Glob(migrate.Embedded(), "*.sql")
	require.NoError(t, err)
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)
	assert.Len(t, embedded, len(onDisk))
}
