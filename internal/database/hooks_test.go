package database

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/models"
)

type countingInvalidator struct {
	calls atomic.Int32
	err   error
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func hookedDB(t *testing.T, inv Invalidator) *gorm.DB {
	db, err := Open(config.DBConfig{Driver: "sqlite", Name: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, RunMigrations(context.Background(), db, "", zap.NewNop()))
	require.NoError(t, RegisterInvalidationHooks(db, inv, zap.NewNop()))
	return db
}

func TestInvalidationHooks(t *testing.T) {
	inv := &countingInvalidator{}
	db := hookedDB(t, inv)

	recipe := models.Recipe{IsPublished: true, IsActive: true}
	require.NoError(t, db.Create(&recipe).Error)
	assert.EqualValues(t, 1, inv.calls.Load())

	require.NoError(t, db.Model(&recipe).Update("average_rating", 4.2).Error)
	assert.EqualValues(t, 2, inv.calls.Load())

	require.NoError(t, db.Delete(&recipe).Error)
	assert.EqualValues(t, 3, inv.calls.Load())
}

func TestInvalidationHooksIgnoreOtherTables(t *testing.T) {
	inv := &countingInvalidator{}
	db := hookedDB(t, inv)

	require.NoError(t, db.Create(&models.Category{Slug: "soups", IsActive: true}).Error)
	assert.Zero(t, inv.calls.Load())
}

func TestInvalidationHooksSkipNoops(t *testing.T) {
	inv := &countingInvalidator{}
	db := hookedDB(t, inv)

	require.NoError(t, db.Model(&models.Language{}).Where("code = ?", "xx").Update("name", "none").Error)
	assert.Zero(t, inv.calls.Load())
}

func TestInvalidationFailureDoesNotFailWrite(t *testing.T) {
	inv := &countingInvalidator{err: errors.New("redis down")}
	db := hookedDB(t, inv)

	err := db.Create(&models.Language{Code: "en", Name: "English", IsActive: true}).Error
	assert.NoError(t, err)
	assert.EqualValues(t, 1, inv.calls.Load())
}

// committedCounter counts recipes visible outside the writing transaction
type committedCounter struct {
	db   *gorm.DB
	seen []int64
	errs []error
}

func (c *committedCounter) Invalidate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	var n int64
	err := c.db.WithContext(ctx).Model(&models.Recipe{}).Count(&n).Error
	c.seen = append(c.seen, n)
	c.errs = append(c.errs, err)
	return nil
}

func TestInvalidationRunsAfterCommit(t *testing.T) {
	counter := &committedCounter{}
	db := hookedDB(t, counter)
	counter.db = db

	require.NoError(t, db.Create(&models.Recipe{IsPublished: true, IsActive: true}).Error)

	require.Len(t, counter.seen, 1)
	assert.NoError(t, counter.errs[0])
	assert.EqualValues(t, 1, counter.seen[0])
}

func TestRolledBackWriteDoesNotInvalidate(t *testing.T) {
	inv := &countingInvalidator{}
	db := hookedDB(t, inv)

	lang := models.Language{Code: "en", Name: "English", IsActive: true}
	require.NoError(t, db.Create(&lang).Error)
	require.EqualValues(t, 1, inv.calls.Load())

	dup := models.Language{Code: "en", Name: "English again", IsActive: true}
	assert.Error(t, db.Create(&dup).Error)
	assert.EqualValues(t, 1, inv.calls.Load())
}
