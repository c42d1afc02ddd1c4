// Package ui implements the interactive terminal frontend.
//
// The [Model] walks a picker flow: choose a Spotify playlist, review its
// track count on a confirmation screen, then watch the resolution run live.
// Runs above the large-run threshold cannot skip the confirmation screen.
package ui
