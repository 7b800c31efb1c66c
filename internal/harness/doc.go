// Package harness runs recipe editing scenarios end to end.
//
// A scenario is a YAML file holding one recipe definition and a sequence
// of editing operations (move, deps, delete), each optionally annotated
// with the exact rejection message it should produce. The harness seeds a
// fresh SQLite store, drives the real engine through the sequence, and
// after every operation re-checks the structural invariants the editor
// promises: positions dense and unique, every dependency edge pointing
// from an earlier step to a later one, no edge endpoint dangling.
//
// The trace of operations plus the final recipe state can be compared
// against golden files with RunWithGolden; regenerate them with
//
//	go test ./internal/harness -update
package harness
