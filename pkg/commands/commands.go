// Package commands provides the high-level command implementations
// for flavor.
//
// This package is the orchestration layer between the CLI and the
// engine packages: each command is implemented in its own file,
// exposing an Options struct and a function returning a Result.
//
//   - sync.go  - Install and Upgrade (reconcile, lock, deploy)
//   - list.go  - List (joined manifest / lock / deployment view)
//   - clean.go - Clean (repository cache removal)
//   - init.go  - Init (starter manifest scaffolding)
//
// Commands receive every collaborator (git client, help indexer,
// filesystem) through their options and keep no global state.
package commands
