// package tasks implements the track resolution and download pipeline.
//
// The core abstraction is ResolveEngine, which settles each track through an
// ordered chain of resolution steps (a catalog-provided locator first, then
// search) and optionally downloads the resolved audio. Runs execute on a
// bounded worker pool with per-track failure isolation; operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks
