// File: internal/favorite/repository.go
package favorite

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Legacy deployments renamed the favorites columns more than once and no
// migration ever reconciled them. Each operation therefore carries a ranked
// list of query variants, canonical shape first, and walks down the list
// until one succeeds. Variant failure is logged at debug level and is never
// surfaced to callers.
var (
	listVariants = []string{
		"SELECT * FROM favorites WHERE user_id = ?",
		"SELECT * FROM favorites WHERE id_usuario = ?",
		"SELECT * FROM favorites WHERE id_ususuario = ?",
		"SELECT * FROM favorites WHERE usuario_id = ?",
	}

	// Keys checked, in order, when extracting the listing id from a row
	// returned by a list variant.
	listingIDKeys = []string{"listing_id", "id_propiedad", "id_inmueble", "id_inmueble_fk"}

	addVariants = []string{
		"INSERT INTO favorites (user_id, listing_id) VALUES (?, ?)",
		"INSERT INTO favorites (id_usuario, id_propiedad) VALUES (?, ?)",
		"INSERT INTO favorites (id_ususuario, id_inmueble) VALUES (?, ?)",
		"INSERT INTO favorites (id_usuario, id_inmueble) VALUES (?, ?)",
	}

	// Remove carries the same column pairs as Add plus the mixed pair some
	// deployments ended up with after partial renames.
	removeVariants = []string{
		"DELETE FROM favorites WHERE user_id = ? AND listing_id = ?",
		"DELETE FROM favorites WHERE id_usuario = ? AND id_propiedad = ?",
		"DELETE FROM favorites WHERE id_ususuario = ? AND id_inmueble = ?",
		"DELETE FROM favorites WHERE id_usuario = ? AND id_inmueble = ?",
	}
)

// Repository defines the interface for favorite data operations. Listing ids
// travel as strings because a legacy row may hold an id shape the canonical
// uuid type cannot represent.
type Repository interface {
	ListForUser(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) (bool, error)
}

type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRepository creates a new GORM favorite repository.
func NewRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{db: db, logger: logger.Named("FavoriteRepository")}
}

// ListForUser returns the listing ids favorited by the user. The first
// variant returning at least one row wins. Exhausting every variant yields an
// empty slice, never an error.
func (r *gormRepository) ListForUser(ctx context.Context, userID string) ([]string, error) {
	for _, query := range listVariants {
		var rows []map[string]interface{}
		if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&rows).Error; err != nil {
			r.logger.Debug("List favorites variant failed", zap.String("query", query), zap.Error(err))
			continue
		}
		if len(rows) == 0 {
			continue
		}
		return r.extractListingIDs(rows, userID), nil
	}
	return []string{}, nil
}

// Add records the pair, trying the canonical column names first and falling
// back to legacy aliases. An already existing pair is treated as success.
func (r *gormRepository) Add(ctx context.Context, userID, listingID string) error {
	existing, err := r.ListForUser(ctx, userID)
	if err == nil {
		for _, id := range existing {
			if id == listingID {
				return nil
			}
		}
	}

	var lastErr error
	for _, query := range addVariants {
		if err := r.db.WithContext(ctx).Exec(query, userID, listingID).Error; err != nil {
			r.logger.Debug("Add favorite variant failed", zap.String("query", query), zap.Error(err))
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("failed to add favorite after trying all column variants: %w", lastErr)
}

// Remove deletes the pair and reports whether a row was actually removed. It
// stops at the first variant with a nonzero affected-row count; a pair that
// was never a favorite yields (false, nil).
func (r *gormRepository) Remove(ctx context.Context, userID, listingID string) (bool, error) {
	for _, query := range removeVariants {
		result := r.db.WithContext(ctx).Exec(query, userID, listingID)
		if result.Error != nil {
			r.logger.Debug("Remove favorite variant failed", zap.String("query", query), zap.Error(result.Error))
			continue
		}
		if result.RowsAffected > 0 {
			return true, nil
		}
	}
	return false, nil
}

// extractListingIDs normalizes raw rows of unknown shape into listing ids.
// Known listing-id column names are checked first; for fully unknown shapes
// the first string-valued column that is not the user id is taken.
func (r *gormRepository) extractListingIDs(rows []map[string]interface{}, userID string) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := extractListingID(row, userID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func extractListingID(row map[string]interface{}, userID string) string {
	for _, key := range listingIDKeys {
		if v, ok := row[key]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	for _, v := range row {
		if s := asString(v); s != "" && s != userID {
			return s
		}
	}
	return ""
}

// asString unwraps the driver-dependent scan types a text column can arrive
// as. The map scan hands back pointer-wrapped values for columns whose
// declared type the driver does not recognize, so pointers are dereferenced
// before matching. Non-string values return "".
func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case uuid.UUID:
		return s.String()
	case sql.NullString:
		if s.Valid {
			return s.String
		}
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return ""
		}
		return asString(rv.Elem().Interface())
	case reflect.String:
		return rv.String()
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
	}
	return ""
}
