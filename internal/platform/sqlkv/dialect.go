package sqlkv

// Dialect holds the statements a Store runs. Each statement takes its
// arguments in the order documented on the field.
type Dialect struct {
	// Name identifies the dialect in logs.
	Name string

	// SelectKey reads one value: (collection, key).
	SelectKey string

	// SelectCollection reads every key and value: (collection).
	SelectCollection string

	// Upsert inserts or replaces one value: (collection, key, value).
	Upsert string

	// DeleteKey removes one value: (collection, key).
	DeleteKey string

	// DeleteCollection removes every value of a collection: (collection).
	DeleteCollection string

	// MapError translates driver errors. Nil leaves errors unchanged.
	MapError func(error) error
}

func (d Dialect) mapError(err error) error {
	if err == nil || d.MapError == nil {
		return err
	}
	return d.MapError(err)
}

// TableName is the table created by the migrations of every dialect.
const TableName = "kv_documents"

// SQLite is the dialect for modernc.org/sqlite and other SQLite drivers.
var SQLite = Dialect{
	Name:             "sqlite",
	SelectKey:        `SELECT value FROM kv_documents WHERE collection = ? AND key = ?`,
	SelectCollection: `SELECT key, value FROM kv_documents WHERE collection = ?`,
	Upsert: `INSERT INTO kv_documents (collection, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (collection, key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`,
	DeleteKey:        `DELETE FROM kv_documents WHERE collection = ? AND key = ?`,
	DeleteCollection: `DELETE FROM kv_documents WHERE collection = ?`,
}

// Postgres is the dialect for PostgreSQL. Values are stored as JSONB.
var Postgres = Dialect{
	Name:             "postgres",
	SelectKey:        `SELECT value::text FROM kv_documents WHERE collection = $1 AND key = $2`,
	SelectCollection: `SELECT key, value::text FROM kv_documents WHERE collection = $1`,
	Upsert: `INSERT INTO kv_documents (collection, key, value, updated_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (collection, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	DeleteKey:        `DELETE FROM kv_documents WHERE collection = $1 AND key = $2`,
	DeleteCollection: `DELETE FROM kv_documents WHERE collection = $1`,
}
