// Package types defines the catalog entities, the classification and
// lookup kind variants, write results, and standard errors shared by the
// libris storage layer and its callers.
package types
