package nim

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/next-dev/nim/bitmap"
)

// Cache is a persistent store of finished conversions keyed by source
// content and conversion settings, so rescanning a directory tree only
// pays for files that changed.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a conversion cache at file.
func OpenCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, depth INTEGER NOT NULL, palette TEXT NOT NULL, resize TEXT NOT NULL, nim BLOB NOT NULL, UNIQUE (sha1, depth, palette, resize))"); err != nil {
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) get(sha string, depth bitmap.Depth, palette, resize string) ([]byte, error) {
	var b []byte
	switch err := c.db.QueryRow("SELECT nim FROM conversion WHERE sha1 = ? AND depth = ? AND palette = ? AND resize = ?", sha, int(depth), palette, resize).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return b, nil
	default:
		return nil, err
	}
}

func (c *Cache) put(sha string, depth bitmap.Depth, palette, resize string, data []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO conversion (sha1, depth, palette, resize, nim) VALUES (?, ?, ?, ?, ?)", sha, int(depth), palette, resize, data); err != nil {
		return err
	}
	return nil
}
