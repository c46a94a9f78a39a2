// File: internal/platform/database/probe.go
package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Probe discovers which physical table names back logical relations in a live
// deployment. Deployed schemas have drifted over time (the listings relation
// has shipped under several names), so candidate names are tried in order,
// most specific first. Probe results are advisory: a miss means the dependent
// feature is unavailable, it never aborts startup.
type Probe struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProbe creates a schema probe bound to a database handle.
func NewProbe(db *gorm.DB, logger *zap.Logger) *Probe {
	return &Probe{db: db, logger: logger.Named("SchemaProbe")}
}

// ResolveTable returns the first candidate table that both exists and contains
// the required column. The boolean is false when no candidate qualifies.
func (p *Probe) ResolveTable(candidates []string, column string) (string, bool) {
	migrator := p.db.Migrator()
	for _, table := range candidates {
		if !migrator.HasTable(table) {
			continue
		}
		if !migrator.HasColumn(table, column) {
			p.logger.Debug("Candidate table exists but lacks required column",
				zap.String("table", table), zap.String("column", column))
			continue
		}
		p.logger.Info("Resolved table", zap.String("table", table), zap.String("column", column))
		return table, true
	}
	p.logger.Warn("No candidate table resolved",
		zap.Strings("candidates", candidates), zap.String("column", column))
	return "", false
}

// EnsureColumn adds a nullable column to a table when it is missing. It is
// strictly additive: nothing is ever dropped or renamed. Returns true when the
// column exists after the call, false when the probe failed; failures are
// logged and swallowed so startup continues with the feature unavailable.
func (p *Probe) EnsureColumn(table, column, sqlType string) bool {
	migrator := p.db.Migrator()
	if migrator.HasColumn(table, column) {
		return true
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s NULL", table, column, sqlType)
	if err := p.db.Exec(stmt).Error; err != nil {
		p.logger.Warn("Failed to add compatibility column",
			zap.String("table", table), zap.String("column", column), zap.Error(err))
		return false
	}
	p.logger.Info("Added compatibility column",
		zap.String("table", table), zap.String("column", column), zap.String("type", sqlType))
	return true
}
