// Package models contains GORM database models for the infrastructure layer.
// These models handle database persistence and are kept apart from the trace domain types.
package models
