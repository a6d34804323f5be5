package tts

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// AudioFile is a spooled audio file that must be removed once the response
// using it has been prepared, whatever the outcome.
type AudioFile interface {
	// Name is the bare file name, suitable for a download attachment.
	Name() string
	// Path is the absolute on-disk location.
	Path() string
	// Remove deletes the file. Removing a file that is already gone is not an
	// error; any other failure is.
	Remove() error
}

// Spool writes synthesized audio to per-request temporary files. Every file
// gets a unique name, so concurrent requests never touch each other's audio.
type Spool struct {
	dir string
}

// NewSpool creates a spool rooted at dir.
func NewSpool(dir string) *Spool {
	return &Spool{dir: dir}
}

// Write stores the audio under a fresh unique name and returns a handle to it.
func (s *Spool) Write(audio []byte) (AudioFile, error) {
	name := fmt.Sprintf("speech-%s.mp3", uuid.NewString())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return nil, errors.Wrap(err, "write audio file")
	}
	return &spoolFile{name: name, path: path}, nil
}

type spoolFile struct {
	name string
	path string
}

func (f *spoolFile) Name() string { return f.name }
func (f *spoolFile) Path() string { return f.path }

func (f *spoolFile) Remove() error {
	err := os.Remove(f.path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
