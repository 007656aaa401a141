package helpers

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ThumbnailField is the multipart form field carrying an uploaded thumbnail.
	ThumbnailField = "thumbnail"

	thumbnailSubdir  = "thumbnails"
	maxThumbnailSize = 5 << 20 // 5 MB
)

var (
	ErrNotAnImage   = errors.New("thumbnail must be an image")
	ErrUploadTooBig = errors.New("thumbnail exceeds the size limit")
)

// ResolveThumbnail applies the thumbnail resolution policy shared by template
// create and both update paths: an uploaded file wins over whatever string
// the client sent (a data URI, an external URL, or an existing path).
func ResolveThumbnail(uploadedPath, submitted string) string {
	if uploadedPath != "" {
		return uploadedPath
	}
	return submitted
}

// SaveThumbnail stores an uploaded "thumbnail" form file under
// uploadDir/thumbnails with a server-assigned name and returns the public
// /uploads path. It returns "" with a nil error when the request carries no
// file.
func SaveThumbnail(c *gin.Context, uploadDir string) (string, error) {
	file, err := c.FormFile(ThumbnailField)
	if err != nil {
		// no file in the request
		return "", nil
	}
	if err := checkThumbnail(file); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(uploadDir, thumbnailSubdir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return "/uploads/" + thumbnailSubdir + "/" + name, nil
}

func checkThumbnail(file *multipart.FileHeader) error {
	if file.Size > maxThumbnailSize {
		return ErrUploadTooBig
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return ErrNotAnImage
	}
	return nil
}
