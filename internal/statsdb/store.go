// Package statsdb persists per-record group statistics to a DuckDB file so
// downstream analyses can query them without re-parsing the VCF.
package statsdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/zhengxinchang/vcfgrpaf/internal/grpaf"
	"github.com/zhengxinchang/vcfgrpaf/internal/vcf"
)

// Store manages a DuckDB connection holding the group_stats table.
// Appends come from the pipeline's single drain goroutine, so no
// synchronization is needed.
type Store struct {
	db       *sql.DB
	conn     *sql.Conn
	appender *goduckdb.Appender
	path     string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create stats directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.openAppender(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates the stats table if it doesn't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS group_stats (
		chrom VARCHAR,
		pos BIGINT,
		id VARCHAR,
		grp VARCHAR,
		af FLOAT,
		maf FLOAT,
		mac BIGINT,
		ac BIGINT,
		an BIGINT,
		n_hemi BIGINT,
		n_miss BIGINT,
		n_homref BIGINT,
		n_het BIGINT,
		n_homalt BIGINT
	)`)
	return err
}

// openAppender pins a connection and creates a DuckDB appender on it.
func (s *Store) openAppender() error {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}

	if err := conn.Raw(func(driverConn any) error {
		var err error
		s.appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "group_stats")
		return err
	}); err != nil {
		conn.Close()
		return fmt.Errorf("create appender: %w", err)
	}

	s.conn = conn
	return nil
}

// Append writes one per-record, per-group metrics row.
func (s *Store) Append(rec *vcf.Record, group string, m grpaf.Metrics) error {
	return s.appender.AppendRow(
		rec.Chrom, rec.Pos, rec.ID, group,
		float32(m.AF), float32(m.MAF),
		int64(m.MAC), int64(m.AC), int64(m.AN),
		int64(m.NHemi), int64(m.NMiss),
		int64(m.NHomRef), int64(m.NHet), int64(m.NHomAlt),
	)
}

// Flush makes appended rows visible to queries on DB().
func (s *Store) Flush() error {
	return s.appender.Flush()
}

// Close flushes the appender and closes the database.
func (s *Store) Close() error {
	var firstErr error
	if s.appender != nil {
		if err := s.appender.Close(); err != nil {
			firstErr = err
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
