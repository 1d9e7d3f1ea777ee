// Package uploads persists avatar image files under generated names.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"accountd/pkg/log"
)

const (
	dirPerm = 0750

	// defaultExtension is used when the original filename carries none.
	defaultExtension = ".png"
)

// Store writes uploaded files into a flat directory. Files are write-once:
// a replacement gets a fresh name and the old file is left in place.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a store for it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the on-disk location of a stored file.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Exists reports whether a stored file is present.
func (s *Store) Exists(filename string) bool {
	_, err := os.Stat(s.Path(filename))
	return err == nil
}

// Save streams the upload into a freshly named file and returns that name.
// The name combines the current time with a random component plus the
// original extension, so a re-upload never touches an earlier file.
func (s *Store) Save(reader io.Reader, originalName string) (string, error) {
	filename := s.generateName(originalName)
	targetPath := s.Path(filename)

	tempFile, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		log.Error().Err(err).Msg("Failed to create temporary file")
		return "", err
	}
	defer s.cleanupTempFile(tempFile)

	if _, err := io.Copy(tempFile, reader); err != nil {
		log.Error().Err(err).Msg("Failed to write uploaded file")
		return "", err
	}

	if err := tempFile.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close temporary file")
		return "", err
	}

	if err := os.Rename(tempFile.Name(), targetPath); err != nil {
		log.Error().Err(err).Str("target_path", targetPath).Msg("Failed to move uploaded file into place")
		return "", err
	}

	log.Info().Str("filename", filename).Str("original_name", originalName).Msg("File stored")
	return filename, nil
}

// generateName builds a collision-resistant filename, retrying in the
// unlikely case the name is already taken.
func (s *Store) generateName(originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = defaultExtension
	}

	for {
		suffix := strings.Split(uuid.NewString(), "-")[0]
		filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
		if !s.Exists(filename) {
			return filename
		}
	}
}

// cleanupTempFile removes the temporary file if it is still around.
func (s *Store) cleanupTempFile(tempFile *os.File) {
	_ = tempFile.Close()
	if err := os.Remove(tempFile.Name()); err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Str("temp_file", tempFile.Name()).Msg("Failed to remove temporary file")
	}
}
