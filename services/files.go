package services

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"ytconv/types"

	"github.com/dhowden/tag"
)

// FileService interface defines methods for converted file management
type FileService interface {
	ListFiles(dir string) ([]types.ConvertedFile, error)
	GetContentType(filePath string) string
}

// fileService implements the FileService interface
type fileService struct{}

// NewFileService creates a new file service
func NewFileService() FileService {
	return &fileService{}
}

// ListFiles scans the output directory for converted files. The directory is
// flat; anything that isn't an .mp3 or .mp4 is skipped.
func (fs *fileService) ListFiles(dir string) ([]types.ConvertedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.ConvertedFile{}, nil
		}
		return nil, err
	}

	files := make([]types.ConvertedFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".mp3" && ext != ".mp4" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		file := types.ConvertedFile{
			Filename: entry.Name(),
			Size:     info.Size(),
			Format:   strings.TrimPrefix(ext, "."),
		}

		// Embedded tags are best effort; mp4 containers and untagged files
		// just list with an empty title.
		if ext == ".mp3" {
			file.Title, file.Artist = fs.extractTags(filepath.Join(dir, entry.Name()))
		}

		files = append(files, file)
	}

	return files, nil
}

// extractTags reads embedded metadata from an audio file
func (fs *fileService) extractTags(path string) (title, artist string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: Could not open audio file %s: %v", path, err)
		return "", ""
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return "", ""
	}
	return meta.Title(), meta.Artist()
}

// GetContentType returns the appropriate MIME type for a converted file
func (fs *fileService) GetContentType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".mp3":
		return "audio/mpeg"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// invalidFilenameChars are stripped from titles before they become download
// filenames.
const invalidFilenameChars = `<>:"/\|?*`

// SanitizeTitle turns a media title into a safe download filename stem.
// Unsafe characters are removed and the result is capped at 100 runes.
func SanitizeTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return -1
		}
		return r
	}, title)
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > 100 {
		cleaned = strings.TrimSpace(string(runes[:100]))
	}
	return cleaned
}
