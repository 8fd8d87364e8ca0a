package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamspace/internal/metrics"
	"teamspace/internal/models"
)

// Ensure GormStore implements Store
var _ Store = (*GormStore)(nil)

// Record is the row holding one team space document. JoinCode duplicates the
// document's join code so join lookups hit an index instead of a scan.
type Record struct {
	TeamSpaceID string    `gorm:"primaryKey;size:32"`
	JoinCode    string    `gorm:"size:32;index"`
	Version     int64     `gorm:"not null;default:1"`
	Document    string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName pins the table name used by migrations.
func (Record) TableName() string { return "team_spaces" }

// GormStore implements Store on top of a relational database via GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over db. The team_spaces table must exist.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Close closes the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FetchAll returns every record in creation order.
func (s *GormStore) FetchAll(ctx context.Context) (out []models.TeamSpace, err error) {
	defer observe("fetch_all", time.Now(), &err)

	var recs []Record
	if err := s.db.WithContext(ctx).Order("created_at, team_space_id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("scan team spaces: %w", err)
	}
	return decodeRecords(recs)
}

// FetchByID returns the record keyed by teamSpaceID.
func (s *GormStore) FetchByID(ctx context.Context, teamSpaceID string) (ts *models.TeamSpace, err error) {
	defer observe("fetch_by_id", time.Now(), &err)

	var rec Record
	if err := s.db.WithContext(ctx).Where("team_space_id = ?", teamSpaceID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch team space %s: %w", teamSpaceID, err)
	}
	return decodeRecord(rec)
}

// FetchByField returns records whose top-level field equals value.
func (s *GormStore) FetchByField(ctx context.Context, field, value string) (out []models.TeamSpace, err error) {
	column := ""
	switch field {
	case models.FieldTeamSpaceID:
		column = "team_space_id"
	case models.FieldJoinCode:
		column = "join_code"
	}
	if column == "" {
		return s.scanField(ctx, field, value)
	}

	defer observe("fetch_by_field", time.Now(), &err)

	var recs []Record
	if err := s.db.WithContext(ctx).
		Where(column+" = ?", value).
		Order("created_at, team_space_id").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("fetch team spaces by %s: %w", field, err)
	}
	return decodeRecords(recs)
}

// scanField filters every document on an unindexed top-level string field.
func (s *GormStore) scanField(ctx context.Context, field, value string) (out []models.TeamSpace, err error) {
	defer observe("scan_field", time.Now(), &err)

	var recs []Record
	if err := s.db.WithContext(ctx).Order("created_at, team_space_id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("scan team spaces: %w", err)
	}

	var matched []Record
	for _, rec := range recs {
		doc, err := decodeDocument([]byte(rec.Document))
		if err != nil {
			return nil, err
		}
		if v, ok := doc[field].(string); ok && v == value {
			matched = append(matched, rec)
		}
	}
	return decodeRecords(matched)
}

// Scan returns every record for which keep reports true.
func (s *GormStore) Scan(ctx context.Context, keep func(*models.TeamSpace) bool) ([]models.TeamSpace, error) {
	all, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.TeamSpace, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Put writes ts whole.
func (s *GormStore) Put(ctx context.Context, ts *models.TeamSpace) (err error) {
	defer observe("put", time.Now(), &err)

	raw, err := json.Marshal(ts)
	if err != nil {
		return fmt.Errorf("encode team space: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Record
		err := lockFor(tx).Where("team_space_id = ?", ts.TeamSpaceID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec := Record{
				TeamSpaceID: ts.TeamSpaceID,
				JoinCode:    ts.TeamSpaceJoinCode,
				Version:     1,
				Document:    string(raw),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("create team space %s: %w", ts.TeamSpaceID, err)
			}
			ts.Version = rec.Version
			return nil
		case err != nil:
			return fmt.Errorf("fetch team space %s: %w", ts.TeamSpaceID, err)
		}

		next := existing.Version + 1
		if err := tx.Model(&Record{}).
			Where("team_space_id = ?", ts.TeamSpaceID).
			Updates(map[string]any{
				"join_code": ts.TeamSpaceJoinCode,
				"document":  string(raw),
				"version":   next,
			}).Error; err != nil {
			return fmt.Errorf("replace team space %s: %w", ts.TeamSpaceID, err)
		}
		ts.Version = next
		return nil
	})
}

// UpdateField sets the value at path.
func (s *GormStore) UpdateField(ctx context.Context, teamSpaceID, path string, value any) error {
	_, err := s.Update(ctx, teamSpaceID, Always, Set(path, value))
	return err
}

// AppendToList appends elems to the list at path.
func (s *GormStore) AppendToList(ctx context.Context, teamSpaceID, path string, elems ...any) error {
	_, err := s.Update(ctx, teamSpaceID, Always, Append(path, elems...))
	return err
}

// RemoveAt removes element index from the list at path.
func (s *GormStore) RemoveAt(ctx context.Context, teamSpaceID, path string, index int) error {
	_, err := s.Update(ctx, teamSpaceID, Always, Remove(Path(path, index)))
	return err
}

// Increment adds delta to the number at path.
func (s *GormStore) Increment(ctx context.Context, teamSpaceID, path string, delta decimal.Decimal) error {
	_, err := s.Update(ctx, teamSpaceID, Always, Increment(path, delta))
	return err
}

// Update applies ops inside one database transaction. The row is locked on
// databases that support it and the write is compared against the version
// read, so a concurrent writer surfaces as ErrConditionFailed.
func (s *GormStore) Update(ctx context.Context, teamSpaceID string, cond Condition, ops ...Op) (version int64, err error) {
	defer observe("update", time.Now(), &err)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec Record
		if err := lockFor(tx).Where("team_space_id = ?", teamSpaceID).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("fetch team space %s: %w", teamSpaceID, err)
		}
		if !cond.holds(rec.Version) {
			return ErrConditionFailed
		}

		doc, err := decodeDocument([]byte(rec.Document))
		if err != nil {
			return err
		}
		if err := applyOps(doc, ops); err != nil {
			return err
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}

		// The result must still be a valid team space.
		var ts models.TeamSpace
		if err := json.Unmarshal(raw, &ts); err != nil {
			return fmt.Errorf("%w: update yields invalid document: %v", ErrInvalidPath, err)
		}

		next := rec.Version + 1
		res := tx.Model(&Record{}).
			Where("team_space_id = ? AND version = ?", teamSpaceID, rec.Version).
			Updates(map[string]any{
				"join_code": ts.TeamSpaceJoinCode,
				"document":  string(raw),
				"version":   next,
			})
		if res.Error != nil {
			return fmt.Errorf("update team space %s: %w", teamSpaceID, res.Error)
		}
		if res.RowsAffected != 1 {
			return ErrConditionFailed
		}
		version = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}

// lockFor adds SELECT ... FOR UPDATE where the dialect supports row locks.
func lockFor(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func decodeRecord(rec Record) (*models.TeamSpace, error) {
	var ts models.TeamSpace
	if err := json.Unmarshal([]byte(rec.Document), &ts); err != nil {
		return nil, fmt.Errorf("decode team space %s: %w", rec.TeamSpaceID, err)
	}
	ts.Version = rec.Version
	return &ts, nil
}

func decodeRecords(recs []Record) ([]models.TeamSpace, error) {
	out := make([]models.TeamSpace, 0, len(recs))
	for _, rec := range recs {
		ts, err := decodeRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *ts)
	}
	return out, nil
}

func observe(op string, start time.Time, err *error) {
	metrics.ObserveStore(op, start, *err)
}
