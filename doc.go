// Package main provides the entry point for the MUT Reserve backend.
// It runs a Fiber web server exposing the JSON API consumed by the
// room-booking dashboard: employee and room administration, catalog
// lookups, reservation booking and cancellation, and role-based
// access-menu management. Data is persisted with gorm.
package main
