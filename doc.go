// Package sqlpager rewrites caller-supplied SQL statements into paginated
// queries and executes them through GORM.
//
// Overview
//
// A paginatable call names a statement, carries named parameters and a Spec.
// sqlpager resolves the statement to literal SQL, then, depending on Mode:
//   - ModePureData: executes the statement as is.
//   - ModeTotalCount: executes the count query only.
//   - ModePagination: executes the count query, checks the requested page
//     against the last page and executes the paginated query.
//
// Key concepts
//   - Dialect: OFFSET/LIMIT template of a database family (mysql, mariadb,
//     postgresql, oracle, sqlserver, mssql).
//   - StatementSource: resolves a statement identifier to SQL with "?"
//     markers and ordered parameter names. Statements is the in-memory one.
//   - Params, Getters: named call parameters, from a map or a record.
//   - Setters, Row: mapping of result rows to typed or dynamic records.
//   - PaginationResult: data, total count and last page.
//
// Statements are rendered with literal values and are not prepared: callers
// are trusted.
package sqlpager
