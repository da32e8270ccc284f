// Package postgres provides PostgreSQL implementations of the store
// interfaces. Queries run through database/sql on the pgx stdlib driver;
// the schema is managed by goose migrations embedded in this package.
package postgres
