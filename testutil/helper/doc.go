// Package helper provides test helpers that arrange and inspect an in-memory event store
// with library domain events.
package helper
