// Package models defines the domain entities flowing through the download pipeline.
//
// The package contains three categories of types:
//
// 1. Listing records: [TrackRecord], the canonical representation of a track
// regardless of which catalog produced it. Records are immutable once a
// catalog source returns them.
//
// 2. Resolution results: [ResolutionOutcome], the terminal success/failure
// record for one track's trip through the fallback chain, and
// [ResolutionStep], which names the chain step that produced the locator.
//
// 3. Run aggregates: [Report], the persisted collection of outcomes plus
// summary counts for a single run.
//
// Optional fields (locator, local path) are plain strings with Has* predicates;
// the empty string means absent.
package models
