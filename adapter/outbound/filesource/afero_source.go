package filesource

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/ajkula/livetext/domain/port/outbound"
)

// AferoSource implements outbound.FileSource on top of an afero filesystem.
type AferoSource struct {
	fs afero.Fs
}

// NewOSSource reads from the host filesystem.
func NewOSSource() outbound.FileSource {
	return NewAferoSource(afero.NewOsFs())
}

func NewAferoSource(fs afero.Fs) *AferoSource {
	return &AferoSource{fs: fs}
}

func (s *AferoSource) ModTime(path string) (time.Time, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if info.IsDir() {
		return time.Time{}, fmt.Errorf("%s is a directory", path)
	}
	return info.ModTime(), nil
}

func (s *AferoSource) ReadText(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
