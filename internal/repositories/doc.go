// package repositories provides the persistence layer for resolution results.
//
// The single repository memoizes search resolutions keyed by a track's
// name/artist pair so repeat runs skip the search backend. Catalog-provided
// locators never pass through here.
package repositories
