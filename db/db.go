package db

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"
)

// Init opens Postgres, verifies the connection and makes sure the admin
// accounts table exists. The event data itself lives upstream; only admin
// accounts are local.
func Init(dsn string) *sql.DB {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("sql.Open error:", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatal("Postgres ping error:", err)
	}
	sqldb.SetMaxOpenConns(20)
	sqldb.SetMaxIdleConns(10)

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);`
	if _, err := sqldb.Exec(createUsersTable); err != nil {
		log.Fatal("Could not create users table:", err)
	}

	return sqldb
}
