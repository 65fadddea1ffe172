package database

import (
	"database/sql"
	"strings"

	"github.com/dkasparas/autonuoma/logger"
)

// Querywithargs couples a partial where clause with its arguments.
type Querywithargs struct {
	Where string
	Args  []any
}

// Structscan runs the query and scans the single result row into T.
func Structscan[T any](query string, args ...any) (T, error) {
	var obj T
	err := dbData.Get(&obj, query, args...)
	return obj, err
}

// GetrowsN runs the query and returns up to limit rows scanned into T.
// Errors are logged and yield an empty slice, the grid callers treat
// missing data as an empty collection.
func GetrowsN[T any](limit uint, query string, args ...any) []T {
	result := make([]T, 0, limit)
	if err := dbData.Select(&result, query, args...); err != nil {
		logger.Logtype("error").Err(err).Str("query", query).Msg("select rows")
		return nil
	}
	return result
}

// Scanrowsdyn scans the first column of the first result row into target.
func Scanrowsdyn(query string, target any, args ...any) {
	if err := dbData.Get(target, query, args...); err != nil && err != sql.ErrNoRows {
		logger.Logtype("error").Err(err).Str("query", query).Msg("scan row")
	}
}

// ExecN executes a statement under the write lock. SQLite allows a single
// writer, concurrent handler writes are serialized here.
func ExecN(query string, args ...any) (sql.Result, error) {
	writeMu.Lock()
	defer writeMu.Unlock()
	return dbData.Exec(query, args...)
}

// ExecNamed executes a named statement bound to arg under the write lock.
func ExecNamed(query string, arg any) (sql.Result, error) {
	writeMu.Lock()
	defer writeMu.Unlock()
	return dbData.NamedExec(query, arg)
}

// InsertRecord inserts the given column/value pairs into table and
// returns the new row id.
func InsertRecord(table string, columns []string, values []any) (int64, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	result, err := ExecN(
		"insert into "+table+" ("+strings.Join(columns, ",")+") values ("+placeholders+")",
		values...,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateRecord updates the given column/value pairs on the row with id.
func UpdateRecord(table string, columns []string, values []any, id uint) error {
	var sb strings.Builder
	sb.WriteString("update " + table + " set ")
	for idx, col := range columns {
		if idx > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col + " = ?")
	}
	sb.WriteString(", updated_at = datetime('now') where id = ?")
	_, err := ExecN(sb.String(), append(values, id)...)
	return err
}

// DeleteRow deletes rows from table matching the query.
func DeleteRow(table string, qu Querywithargs) (sql.Result, error) {
	query := "delete from " + table
	if qu.Where != "" {
		query += " where " + qu.Where
	}
	return ExecN(query, qu.Args...)
}
