package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const insertBatchSize = 200

// Store persists season record sets in a SQL database through gorm.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open connects to the database, migrates the schema and returns a Store.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if driver == DriverSQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY under parallel season writes.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return New(db)
}

// New wraps an existing connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("sqlstore: nil db")
	}
	if err := db.AutoMigrate(&seasonRow{}, &recordRow{}, &combinedRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Write replaces the season's records inside a single transaction.
// Rows are keyed by season, whatever each record's own Season field says.
func (s *Store) Write(ctx context.Context, season int, records []playoffs.PlayerSeasonRecord) error {
	rows := make([]recordRow, len(records))
	for i, r := range records {
		rows[i] = toRecordRow(i, r)
		rows[i].Season = season
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("season = ?", season).Delete(&recordRow{}).Error; err != nil {
			return fmt.Errorf("clear season %d: %w", season, err)
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert season %d: %w", season, err)
			}
		}
		marker := seasonRow{Season: season, Records: len(rows), WrittenAt: s.now().UTC()}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&marker).Error; err != nil {
			return fmt.Errorf("mark season %d: %w", season, err)
		}
		return nil
	})
}

// ReadAll loads every requested season that has been written.
func (s *Store) ReadAll(ctx context.Context, seasons []int) (map[int][]playoffs.PlayerSeasonRecord, error) {
	out := make(map[int][]playoffs.PlayerSeasonRecord, len(seasons))
	if len(seasons) == 0 {
		return out, nil
	}
	db := s.db.WithContext(ctx)

	var markers []seasonRow
	if err := db.Where("season IN ?", seasons).Find(&markers).Error; err != nil {
		return nil, fmt.Errorf("read seasons: %w", err)
	}
	for _, m := range markers {
		out[m.Season] = make([]playoffs.PlayerSeasonRecord, 0, m.Records)
	}

	var rows []recordRow
	if err := db.Where("season IN ?", seasons).Order("season, ordinal").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	for _, r := range rows {
		if _, ok := out[r.Season]; !ok {
			continue
		}
		out[r.Season] = append(out[r.Season], r.toRecord())
	}
	return out, nil
}

// WriteCombined replaces the combined collection.
func (s *Store) WriteCombined(ctx context.Context, records []playoffs.PlayerSeasonRecord) error {
	rows := make([]combinedRow, len(records))
	for i, r := range records {
		rows[i] = toCombinedRow(i, r)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&combinedRow{}).Error; err != nil {
			return fmt.Errorf("clear combined: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
}

// ReadCombined loads the combined collection in stored order.
func (s *Store) ReadCombined(ctx context.Context) ([]playoffs.PlayerSeasonRecord, error) {
	var rows []combinedRow
	if err := s.db.WithContext(ctx).Order("ordinal").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]playoffs.PlayerSeasonRecord, len(rows))
	for i, r := range rows {
		out[i] = r.toRecord()
	}
	return out, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
