package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const baseDir = "./static/uploads"

// Upload stores an uploaded file under the given folder and returns
// the durable URL clients use to retrieve it.
func Upload(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	ext := filepath.Ext(header.Filename)
	fname := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	fullDir := filepath.Join(baseDir, folder)
	if err := os.MkdirAll(fullDir, os.ModePerm); err != nil {
		return "", err
	}

	path := filepath.Join(fullDir, fname)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}

	return "/static/uploads/" + folder + "/" + fname, nil
}

// UploadPhoto stores an image and writes a 320px thumbnail next to
// it. Thumbnail failures are not fatal; the original is already
// durable.
func UploadPhoto(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	url, err := Upload(file, header, folder)
	if err != nil {
		return "", err
	}

	path := filepath.Join(baseDir, folder, filepath.Base(url))
	if img, err := imaging.Open(path); err == nil {
		thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
		thumbPath := thumbName(path)
		_ = imaging.Save(thumb, thumbPath)
	}

	return url, nil
}

func thumbName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}
