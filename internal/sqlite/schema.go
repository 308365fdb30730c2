// Package sqlite implements a SQLite persister for the object table. It
// stores the same durable records the JSON file holds, one row per entity,
// and rewrites them in a single transaction on every save.
package sqlite

// Schema DDL.
const (
	createObjects = `CREATE TABLE IF NOT EXISTS objects (
    seq INTEGER NOT NULL,
    key TEXT PRIMARY KEY,
    class_name TEXT NOT NULL,
    record TEXT NOT NULL
);`

	idxObjectsSeq   = `CREATE INDEX IF NOT EXISTS idx_objects_seq ON objects(seq);`
	idxObjectsClass = `CREATE INDEX IF NOT EXISTS idx_objects_class ON objects(class_name);`
)

// schemaDDL lists the statements run before every read or write.
var schemaDDL = []string{
	createObjects,
	idxObjectsSeq,
	idxObjectsClass,
}
