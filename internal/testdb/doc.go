// Package testdb provides database setup helpers for tests.
//
// SQLite databases are in-memory and private to each test, so they need no
// external services. PostgreSQL helpers skip the calling test unless
// TASKS_TEST_DATABASE_URL is set:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.OpenPostgres(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			// changes made through tx are rolled back afterwards
//		})
//	}
package testdb
