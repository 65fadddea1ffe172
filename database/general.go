package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dkasparas/autonuoma/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var (
	dbData  *sqlx.DB
	writeMu sync.Mutex

	// DBVersion is the current migration version, filled by UpgradeDB.
	DBVersion string
)

// InitDB opens the rental database, creating the file first if needed.
func InitDB(dbfile string) error {
	if err := os.MkdirAll(filepath.Dir(dbfile), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(dbfile); os.IsNotExist(err) {
		if _, err := os.Create(dbfile); err != nil {
			return err
		}
	}
	db, err := sqlx.Connect("sqlite3", "file:"+dbfile+"?_fk=1&_mutex=no&_cslike=0")
	if err != nil {
		return err
	}
	db.SetMaxIdleConns(15)
	db.SetMaxOpenConns(5)
	dbData = db
	return nil
}

// DBClose closes the database connection.
func DBClose() {
	if dbData != nil {
		dbData.Close()
	}
}

// UpgradeDB runs the pending schema migrations from ./schema/db.
func UpgradeDB(dbfile string) error {
	m, err := migrate.New(
		"file://./schema/db",
		"sqlite3://"+dbfile+"?cache=shared&_fk=1&_mutex=no&_cslike=0",
	)
	if err != nil {
		return fmt.Errorf("migration init failed: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}
	vers, _, _ := m.Version()
	DBVersion = strconv.Itoa(int(vers))
	return nil
}

// Backup the database into backupPath using VACUUM INTO and prune old
// backups beyond maxbackups.
func Backup(backupPath string, maxbackups int) error {
	_, err := dbData.Exec(`VACUUM INTO "` + backupPath + `"`)
	if err != nil {
		return fmt.Errorf("vacuum failed: %w", err)
	}
	return removeOldDbBackups(filepath.Dir(backupPath), maxbackups)
}

func removeOldDbBackups(dir string, max int) error {
	if max <= 0 {
		return nil
	}
	const prefix = "autonuoma.db."
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			backups = append(backups, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	for idx, name := range backups {
		if idx < max {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			logger.Logtype("error").Err(err).Str("file", name).Msg("remove old backup")
		}
	}
	return nil
}

// ParseDate parses a yyyy-mm-dd string into a NullTime.
func ParseDate(date string) sql.NullTime {
	var d sql.NullTime
	if date == "" {
		return d
	}
	var err error
	d.Time, err = time.Parse("2006-01-02", date)
	d.Valid = err == nil
	return d
}

// ParseDateTime parses a datetime string in a few accepted layouts,
// returning the zero time when nothing matches.
func ParseDateTime(date string) time.Time {
	if date == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}
