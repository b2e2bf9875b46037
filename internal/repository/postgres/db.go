// internal/repository/postgres/db.go
package postgres

import "github.com/Masterminds/squirrel"

// psql is the statement builder all repositories share.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
