package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Upload is a user-submitted media file.
type Upload struct {
	Filename string
	Content  io.Reader
}

// MediaStore keeps device media files in a single folder.
type MediaStore struct {
	dir string
}

func NewMediaStore(dir string) *MediaStore {
	return &MediaStore{dir: dir}
}

func (m *MediaStore) Dir() string {
	return m.dir
}

// Save writes the upload under its sanitized name and returns that name.
// An existing file with the same name is replaced.
func (m *MediaStore) Save(upload Upload) (string, error) {
	if upload.Content == nil {
		return "", ErrInvalidFile
	}
	name := SecureFilename(upload.Filename)
	if name == "" || !AllowedFile(name) {
		return "", ErrInvalidFile
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	file, err := os.Create(filepath.Join(m.dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer file.Close()
	if _, err := io.Copy(file, upload.Content); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return name, nil
}

func (m *MediaStore) Remove(name string) error {
	return os.Remove(filepath.Join(m.dir, name))
}

// RemoveAll deletes each file and returns a warning for every file that
// could not be removed.
func (m *MediaStore) RemoveAll(names []string) []string {
	var warnings []string
	for _, name := range names {
		if err := m.Remove(name); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("media remove failed file=%s error=%v", name, err)
			}
			warnings = append(warnings, fmt.Sprintf("File %s does not exist.", name))
			continue
		}
		log.Printf("media removed file=%s", name)
	}
	return warnings
}
