package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/kikitori/kikitori-backend/internal/platform/envutil"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// SQLiteService is the embedded-variant store. It carries the extra
// lexicon tables (word, global kanji, phrase_kanji) that the hosted
// variant denormalizes into per-video kanji entries instead. The two
// schemas are independent snapshots; nothing syncs them.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(logg *logger.Logger) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")

	path := envutil.String("SQLITE_PATH", "kikitori.db")
	// SQLite only enforces ON DELETE CASCADE with the pragma on.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite at %s: %w", path, err)
	}

	return &SQLiteService{db: gdb, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) AutoMigrateAll() error {
	s.log.Info("Auto migrating sqlite tables...")
	if err := AutoMigrateCore(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := AutoMigrateLexicon(s.db); err != nil {
		s.log.Error("Lexicon migration failed", "error", err)
		return err
	}
	if err := EnsureVideoIndexes(s.db); err != nil {
		s.log.Error("Video index migration failed", "error", err)
		return err
	}
	return nil
}
