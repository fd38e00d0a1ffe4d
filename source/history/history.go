package history

// The REPL's history, kept in whatever SQL database the config names so that it survives between
// sessions. A Store satisfies readline's History interface.

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"src.elv.sh/pkg/persistent/vector"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

const TABLE = "atomic_history"

var (
	drivers = map[string]string{"Firebird SQL": "firebirdsql", "MariaDB": "mysql", "MySQL": "mysql",
		"Oracle": "oracle", "Postgres": "postgres", "SQL Server": "sqlserver", "SQLite": "sqlite"}
)

type Store struct {
	db     *sql.DB
	driver string
	lines  vector.Vector
	next   int // The sequence number of the next line written.
	limit  int
}

// Open connects to the database, makes the table if need be, and loads the most recent lines.
func Open(driver, dsn string, limit int) (*Store, error) {
	driverName, ok := drivers[driver]
	if !ok {
		return nil, errors.Errorf("unknown history driver %q: the options are %s", driver,
			strings.Join(GetSortedDrivers(), ", "))
	}
	db, e := sql.Open(driverName, dsn)
	if e != nil {
		return nil, errors.Wrapf(e, "opening %s history", driver)
	}
	if e := db.Ping(); e != nil {
		db.Close()
		return nil, errors.Wrapf(e, "connecting to %s history", driver)
	}
	st := &Store{db: db, driver: driverName, lines: vector.Empty, limit: limit}
	if e := st.init(); e != nil {
		db.Close()
		return nil, e
	}
	return st, nil
}

// Not every database understands CREATE TABLE IF NOT EXISTS, so we find out whether the table is
// there by asking it something.
func (st *Store) init() error {
	if _, e := st.db.Exec("SELECT COUNT(*) FROM " + TABLE); e != nil {
		query := "CREATE TABLE " + TABLE + " (seq INTEGER, line VARCHAR(4000))"
		if _, e := st.db.Exec(query); e != nil {
			return errors.Wrap(e, "creating history table")
		}
	}
	rows, e := st.db.Query("SELECT seq, line FROM " + TABLE + " ORDER BY seq")
	if e != nil {
		return errors.Wrap(e, "reading history")
	}
	defer rows.Close()
	lines := []string{}
	for rows.Next() {
		var seq int
		var line string
		if e := rows.Scan(&seq, &line); e != nil {
			return errors.Wrap(e, "reading history")
		}
		lines = append(lines, line)
		st.next = seq + 1
	}
	if e := rows.Err(); e != nil {
		return errors.Wrap(e, "reading history")
	}
	if len(lines) > st.limit {
		lines = lines[len(lines)-st.limit:]
	}
	for _, line := range lines {
		st.lines = st.lines.Conj(line)
	}
	log.WithField("lines", st.lines.Len()).Debug("history loaded")
	return nil
}

// The drivers disagree about how to write a placeholder.
func (st *Store) placeholder(n int) string {
	switch st.driver {
	case "postgres":
		return fmt.Sprintf("$%d", n)
	case "oracle":
		return fmt.Sprintf(":%d", n)
	case "sqlserver":
		return fmt.Sprintf("@p%d", n)
	}
	return "?"
}

// Write appends a line and returns the new length, as readline expects.
func (st *Store) Write(line string) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return st.lines.Len(), nil
	}
	query := "INSERT INTO " + TABLE + " (seq, line) VALUES (" + st.placeholder(1) + ", " + st.placeholder(2) + ")"
	if _, e := st.db.Exec(query, st.next, line); e != nil {
		return st.lines.Len(), errors.Wrap(e, "writing history")
	}
	st.next++
	st.lines = st.lines.Conj(line)
	if st.lines.Len() > st.limit {
		st.trim()
	}
	return st.lines.Len(), nil
}

// Drops the oldest lines, from memory and from the table.
func (st *Store) trim() {
	kept := st.Dump().([]string)
	kept = kept[len(kept)-st.limit:]
	st.lines = vector.Empty
	for _, line := range kept {
		st.lines = st.lines.Conj(line)
	}
	query := "DELETE FROM " + TABLE + " WHERE seq < " + st.placeholder(1)
	if _, e := st.db.Exec(query, st.next-st.limit); e != nil {
		log.WithError(e).Warn("couldn't trim history")
	}
}

func (st *Store) GetLine(i int) (string, error) {
	line, ok := st.lines.Index(i)
	if !ok {
		return "", errors.Errorf("there is no history line %d", i)
	}
	return line.(string), nil
}

func (st *Store) Len() int {
	return st.lines.Len()
}

func (st *Store) Dump() interface{} {
	result := make([]string, 0, st.lines.Len())
	for it := st.lines.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(string))
	}
	return result
}

func (st *Store) Close() error {
	return st.db.Close()
}

func GetSortedDrivers() []string {
	dr := []string{}
	for k := range drivers {
		dr = append(dr, k)
	}
	sort.Strings(dr)
	return dr
}
