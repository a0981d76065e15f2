package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage errors
var (
	ErrPathTraversal = errors.New("path traversal detected")
	ErrFileNotFound  = errors.New("file not found")
	ErrFileTooLarge  = errors.New("file exceeds size limit")
	ErrBlockedExt    = errors.New("file extension is blocked")
)

// MaxAttachmentSize is the maximum allowed attachment size (25 MB)
const MaxAttachmentSize = 25 * 1024 * 1024

// BlockedExtensions contains file extensions that are never stored,
// even when a customer reply carries them
var BlockedExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".com": true,
	".pif": true, ".scr": true, ".vbs": true, ".js": true,
	".jar": true, ".ps1": true, ".sh": true, ".bash": true,
	".msi": true, ".dll": true, ".sys": true,
}

// FileStorage defines the interface for attachment file storage
type FileStorage interface {
	// Save stores a file and returns its relative path and stored size.
	Save(filename string, content io.Reader) (string, int64, error)
	Get(filePath string) (io.ReadCloser, error)
	Delete(filePath string) error
}

// localStorage implements FileStorage using the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) (FileStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &localStorage{basePath: basePath}, nil
}

// validatePath ensures path is within basePath (prevents traversal)
func (s *localStorage) validatePath(filePath string) (string, error) {
	cleanPath := filepath.Clean(filePath)

	if filepath.IsAbs(cleanPath) {
		return "", ErrPathTraversal
	}
	if strings.Contains(cleanPath, "..") {
		return "", ErrPathTraversal
	}

	fullPath := filepath.Join(s.basePath, cleanPath)

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) &&
		absPath != absBase {
		return "", ErrPathTraversal
	}

	return absPath, nil
}

// ValidateFile checks file extension and declared size before storage
func ValidateFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))

	if BlockedExtensions[ext] {
		return ErrBlockedExt
	}
	if size > MaxAttachmentSize {
		return ErrFileTooLarge
	}
	return nil
}

// Save stores a file under a generated name and returns the relative path
// and the number of bytes written. Content larger than MaxAttachmentSize
// is rejected and the partial file removed.
func (s *localStorage) Save(filename string, content io.Reader) (string, int64, error) {
	ext := filepath.Ext(filename)
	uniqueName := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	// Shard into subdirectories by UUID prefix
	subDir := uniqueName[:2]
	dirPath := filepath.Join(s.basePath, subDir)

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	filePath := filepath.Join(subDir, uniqueName)
	fullPath := filepath.Join(s.basePath, filePath)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// Copy at most one byte past the limit so oversize content is detectable
	written, err := io.Copy(file, io.LimitReader(content, MaxAttachmentSize+1))
	if err != nil {
		os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}
	if written > MaxAttachmentSize {
		os.Remove(fullPath)
		return "", 0, ErrFileTooLarge
	}

	return filePath, written, nil
}

// Get retrieves a file by its relative path
func (s *localStorage) Get(filePath string) (io.ReadCloser, error) {
	fullPath, err := s.validatePath(filePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a file by its relative path
func (s *localStorage) Delete(filePath string) error {
	fullPath, err := s.validatePath(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			// Already gone
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
