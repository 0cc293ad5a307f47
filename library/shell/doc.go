// Package shell is the imperative shell around the library core.
//
// It translates between domain events and storable events, runs the command workflow with retry
// on concurrency conflicts, allocates book ids, and defines the handler contracts and observability helpers
// that the command and query features and the observable wrappers build on.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
