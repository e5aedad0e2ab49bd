package db

import (
	"fmt"
	"gilmoremanor/internal/errors"
	"gilmoremanor/internal/random"
	"strings"
	"time"

	_ "embed"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
)

//go:embed init.sql
var initialiseSchemaScript string

// DBs holds two connection pools, one for read/write operations and one for read-only operations.
type DBs struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
}

// NewDB establishes two database connections, one for read/write operations and one for read-only operations.
// This is a best practice mentioned in https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995
//
// The url parameter is the path to the SQLite database file or ":memory:" for an in-memory database.
func NewDB(url string) (*DBs, error) {
	var (
		err         error
		readWriteDB *sqlx.DB
		readDB      *sqlx.DB
	)

	// For in-memory databases, we need shared cache mode so that both databases access the same data.
	//
	// For parallel tests, we need to use a different database file for each test to avoid sharing data.
	// See https://www.sqlite.org/inmemorydb.html.
	// For parallel tests, each ":memory:" database gets a random name so
	// tests don't share data through the common cache.
	isInMemory := strings.Contains(url, ":memory:")
	readMode := "mode=ro"
	writeMode := "mode=rwc"
	cacheConfig := "cache=private"
	if isInMemory {
		var randomID string
		if randomID, err = random.Letters(20); err != nil {
			return nil, errors.Wrap(err, "generate random ID")
		}
		url = randomID
		readMode = "mode=memory"
		writeMode = "mode=memory"
		cacheConfig = "cache=shared"
	}
	commonConfig := "_journal_mode=wal&_busy_timeout=5000&_synchronous=normal&_foreign_keys=on"

	// The options prefixed with underscore '_' are SQLite pragmas documented at https://www.sqlite.org/pragma.html.
	// The options without leading underscore are SQLite URI parameters documented at https://www.sqlite.org/uri.html.
	readConfig := fmt.Sprintf("file:%s?%s&_txlock=deferred&_query_only=true&%s&%s", url, readMode, commonConfig, cacheConfig)
	readWriteConfig := fmt.Sprintf("file:%s?%s&_txlock=immediate&%s&%s", url, writeMode, commonConfig, cacheConfig)

	if readWriteDB, err = sqlx.Open("sqlite3", readWriteConfig); err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}

	readWriteDB.SetMaxOpenConns(1)
	readWriteDB.SetMaxIdleConns(1)
	readWriteDB.SetConnMaxLifetime(time.Hour)
	readWriteDB.SetConnMaxIdleTime(time.Hour)

	// Initialize the database schema
	if _, err = readWriteDB.Exec(initialiseSchemaScript); err != nil {
		return nil, errors.Wrap(err, "initialize schema")
	}

	if readDB, err = sqlx.Open("sqlite3", readConfig); err != nil {
		return nil, errors.Wrap(err, "open read database")
	}

	maxReadConns := 10
	readDB.SetMaxOpenConns(maxReadConns)
	readDB.SetMaxIdleConns(maxReadConns)
	readDB.SetConnMaxLifetime(time.Hour)
	readDB.SetConnMaxIdleTime(time.Hour)

	return &DBs{
		ReadWrite: readWriteDB,
		ReadOnly:  readDB,
	}, nil
}

// Close closes both connection pools.
func (dbs *DBs) Close() error {
	var errorList []error
	if err := dbs.ReadOnly.Close(); err != nil {
		errorList = append(errorList, errors.Wrap(err, "close read database"))
	}
	if err := dbs.ReadWrite.Close(); err != nil {
		errorList = append(errorList, errors.Wrap(err, "close read-write database"))
	}
	return errors.Join(errorList...)
}
