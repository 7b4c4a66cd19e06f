// Package persistence stores recorded call events in a relational database.
// It uses GORM as the ORM layer with SQLite and PostgreSQL drivers, so traces of
// several runs can be queried after the traced application exits.
package persistence
