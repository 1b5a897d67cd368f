package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Invalidator drops every memoized match result
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// matchInputs are the tables a match result is computed from
var matchInputs = map[string]bool{
	"languages":               true,
	"ingredients":             true,
	"ingredient_translations": true,
	"recipes":                 true,
	"recipe_ingredients":      true,
	"recipe_translations":     true,
}

const (
	hookName    = "catalog:invalidate_match_cache"
	afterCommit = "gorm:commit_or_rollback_transaction"
)

// RegisterInvalidationHooks invalidates the match cache after every
// successful create, update or delete touching a table matching reads.
// The hooks run once gorm's own transaction has committed; writes inside an
// explicit transaction still fire at statement time. Invalidation failures
// are logged and never fail the write.
func RegisterInvalidationHooks(db *gorm.DB, inv Invalidator, log *zap.Logger) error {
	hook := func(tx *gorm.DB) {
		if tx.Error != nil || tx.Statement == nil || !matchInputs[tx.Statement.Table] {
			return
		}
		if tx.RowsAffected == 0 {
			return
		}
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		if err := inv.Invalidate(ctx); err != nil {
			log.Warn("failed to invalidate match cache",
				zap.String("table", tx.Statement.Table),
				zap.Error(err))
		}
	}

	if err := db.Callback().Create().After(afterCommit).Register(hookName, hook); err != nil {
		return fmt.Errorf("failed to register create hook: %w", err)
	}
	if err := db.Callback().Update().After(afterCommit).Register(hookName, hook); err != nil {
		return fmt.Errorf("failed to register update hook: %w", err)
	}
	if err := db.Callback().Delete().After(afterCommit).Register(hookName, hook); err != nil {
		return fmt.Errorf("failed to register delete hook: %w", err)
	}
	return nil
}
