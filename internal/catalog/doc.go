// Package catalog implements the data transformations applied to parsed
// library records: deduplication and aggregation, sorting, free-text
// filtering and statistics.
//
// Every function in this package is pure with respect to its inputs except
// Sorter.Sort, which reorders the slice it is given. State such as the
// canonical library list lives in the session package.
package catalog
