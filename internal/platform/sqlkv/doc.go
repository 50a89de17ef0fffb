// Package sqlkv implements store.Store on top of database/sql.
//
// All collections share one table keyed by (collection, key). Dialects
// supply the SQL text, so the same Store serves both SQLite and PostgreSQL.
package sqlkv
