package database

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgconn"
)

var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	RulesTable    = "recurrence_rules"
	TasksTable    = "tasks"
	EventsTable   = "events"
	HearingsTable = "hearings"
	CasesTable    = "cases"
	MattersTable  = "advisory_matters"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation, the signal a competing caller already inserted the row.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
