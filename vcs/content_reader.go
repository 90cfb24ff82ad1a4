package vcs

import "os"

// ContentReader is a function that reads file content given a file path.
// This allows the caller to control how files are read (filesystem, git, etc.)
type ContentReader func(filePath string) ([]byte, error)

// ContentWriter replaces the content of the file at filePath.
type ContentWriter func(filePath string, data []byte, perm os.FileMode) error

// FilesystemContentReader reads files from disk.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}

// FilesystemContentWriter writes files to disk, keeping perm for new files.
func FilesystemContentWriter() ContentWriter {
	return os.WriteFile
}
