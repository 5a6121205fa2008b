// Package filesystem abstracts the file operations the deployer and
// lock store perform, so tests can run against an in-memory filesystem.
package filesystem

import "io/fs"

// FS is the filesystem contract used throughout flavor.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	ReadDir(name string) ([]fs.DirEntry, error)
}
