package web

import (
	"io/fs"
	"net/http"
)

// filesystem serves the embedded assets without directory listings.
type filesystem struct {
	http.FileSystem
}

func (f filesystem) Open(path string) (http.File, error) {
	file, err := f.FileSystem.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}
