package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (FileStorage, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewLocalStorage(dir)
	require.NoError(t, err)
	return fs, dir
}

func TestValidatePath_RejectsEscapes(t *testing.T) {
	fs, _ := newTestStorage(t)
	ls := fs.(*localStorage)

	escapes := map[string]string{
		"simple traversal": "../etc/passwd",
		"double traversal": "../../etc/passwd",
		"nested traversal": "subdir/../../../etc/passwd",
		"windows style":    "..\\..\\windows\\system32",
		"absolute path":    "/etc/passwd",
	}

	for name, path := range escapes {
		t.Run(name, func(t *testing.T) {
			_, err := ls.validatePath(path)
			assert.ErrorIs(t, err, ErrPathTraversal)
		})
	}
}

func TestValidatePath_AcceptsRelativePaths(t *testing.T) {
	fs, dir := newTestStorage(t)
	ls := fs.(*localStorage)

	absBase, err := filepath.Abs(dir)
	require.NoError(t, err)

	for _, path := range []string{"quote.pdf", "ab/quote.pdf", "ab/ab123456-7890.pdf"} {
		result, err := ls.validatePath(path)
		assert.NoError(t, err, path)
		assert.True(t, strings.HasPrefix(result, absBase), path)
	}
}

func TestGetAndDelete_RefuseTraversal(t *testing.T) {
	fs, _ := newTestStorage(t)

	_, err := fs.Get("../../../etc/passwd")
	assert.ErrorIs(t, err, ErrPathTraversal)

	assert.ErrorIs(t, fs.Delete("../../../etc/passwd"), ErrPathTraversal)
}

func TestGet_MissingFile(t *testing.T) {
	fs, _ := newTestStorage(t)

	_, err := fs.Get("nonexistent.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestValidateFile_Extensions(t *testing.T) {
	blocked := []string{"malware.exe", "script.bat", "script.sh", "script.ps1", "app.jar", "MALWARE.EXE"}
	allowed := []string{"quote.pdf", "showroom.jpg", "price-list.xlsx"}

	for _, name := range blocked {
		assert.ErrorIs(t, ValidateFile(name, 1024), ErrBlockedExt, name)
	}
	for _, name := range allowed {
		assert.NoError(t, ValidateFile(name, 1024), name)
	}
}

func TestValidateFile_SizeLimit(t *testing.T) {
	assert.NoError(t, ValidateFile("quote.pdf", MaxAttachmentSize-1))
	assert.NoError(t, ValidateFile("quote.pdf", MaxAttachmentSize))
	assert.ErrorIs(t, ValidateFile("quote.pdf", MaxAttachmentSize+1), ErrFileTooLarge)
}

func TestSaveThenGet_RoundTrip(t *testing.T) {
	fs, _ := newTestStorage(t)

	const body = "dining table measurements"
	path, size, err := fs.Save("measurements.txt", strings.NewReader(body))
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.Equal(t, int64(len(body)), size)

	reader, err := fs.Get(path)
	require.NoError(t, err)
	defer reader.Close()

	stored, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, body, string(stored))
}

func TestSave_ShardsAndKeepsExtension(t *testing.T) {
	fs, _ := newTestStorage(t)

	path, _, err := fs.Save("quote.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, ".pdf", filepath.Ext(path))
	// Stored under a two-character shard directory derived from the UUID.
	assert.Len(t, filepath.Dir(path), 2)
}

func TestDelete_RemovesStoredFile(t *testing.T) {
	fs, _ := newTestStorage(t)

	path, _, err := fs.Save("quote.pdf", strings.NewReader("content"))
	require.NoError(t, err)

	require.NoError(t, fs.Delete(path))

	_, err = fs.Get(path)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDelete_MissingFileIsNoError(t *testing.T) {
	fs, _ := newTestStorage(t)

	assert.NoError(t, fs.Delete("nonexistent.pdf"))
}

func TestNewLocalStorage_CreatesNestedDirectory(t *testing.T) {
	newDir := filepath.Join(t.TempDir(), "attachments", "nested")

	_, err := NewLocalStorage(newDir)
	require.NoError(t, err)

	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
