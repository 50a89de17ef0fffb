// Package postgres opens a PostgreSQL-backed document store. Documents live
// in a single JSONB table managed by embedded goose migrations; queries are
// issued through the sqlkv package with the Postgres dialect.
package postgres
