package outbound

import "time"

// FileSource is the filesystem access the watcher needs: a modification time
// lookup and a full read of a text file.
type FileSource interface {
	// returns the current modification time of path
	ModTime(path string) (time.Time, error)

	// reads the whole file at path
	ReadText(path string) (string, error)
}
