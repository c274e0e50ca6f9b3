package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/dbtest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string `gorm:"uniqueIndex"`
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	conn := dbtest.Open(t, &testModel{})
	client := Wrap(conn)

	ctx := context.Background()
	require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}))

	var count int64
	require.NoError(t, conn.Model(&testModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	require.NoError(t, conn.Model(&testModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "rollback should leave the first record only")
}

func TestPingAndDialect(t *testing.T) {
	client := Wrap(dbtest.Open(t))
	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "sqlite", client.Dialect())
}

func TestIsUniqueViolation(t *testing.T) {
	conn := dbtest.Open(t, &testModel{})
	require.NoError(t, conn.Create(&testModel{Name: "GFG001"}).Error)

	err := conn.Create(&testModel{Name: "GFG001"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err, ""))
	assert.False(t, IsUniqueViolation(nil, ""))
	assert.False(t, IsUniqueViolation(errors.New("other"), ""))
	assert.True(t, IsUniqueViolation(err, "name"))
	assert.False(t, IsUniqueViolation(err, "idx_partners_name"))
}

func TestIsUniqueViolationPostgresDrivers(t *testing.T) {
	pgxErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_partners_name"}
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", pgxErr), ""))
	assert.True(t, IsUniqueViolation(pgxErr, "idx_partners_name"))
	assert.False(t, IsUniqueViolation(pgxErr, "inventory_code_key"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505", Constraint: "inventory_code_key"}, "inventory_code_key"))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey, ""))
}

func TestIsNotFound(t *testing.T) {
	conn := dbtest.Open(t, &testModel{})
	var row testModel
	err := conn.First(&row, "name = ?", "missing").Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestDialectorForRequiresDSN(t *testing.T) {
	_, _, err := dialectorFor(config.DBConfig{}, config.FeatureFlagsConfig{})
	require.Error(t, err)

	_, driver, err := dialectorFor(config.DBConfig{}, config.FeatureFlagsConfig{UseSQLite: true})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", driver)

	_, driver, err = dialectorFor(config.DBConfig{DSN: "postgres://localhost/ooh"}, config.FeatureFlagsConfig{})
	require.NoError(t, err)
	assert.Equal(t, "postgres", driver)
}
