// Package scaffold writes the starter files created by `envchecker init`.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates
var templates embed.FS

// File maps an embedded template to its name in the target directory.
type File struct {
	Template string
	Name     string
}

// DefaultFiles are the starter schema and its matching dotenv example.
var DefaultFiles = []File{
	{Template: "templates/envchecker.config.yaml", Name: "envchecker.config.yaml"},
	{Template: "templates/env.example", Name: ".env.example"},
}

// Result lists the paths written and the ones left untouched.
type Result struct {
	Created []string
	Skipped []string
}

// Init writes DefaultFiles into dir. Existing files are never overwritten.
func Init(dir string) (*Result, error) {
	return Write(dir, DefaultFiles...)
}

// Write copies each template into dir unless a file with that name exists.
func Write(dir string, files ...File) (*Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	res := &Result{}
	for _, f := range files {
		data, err := templates.ReadFile(f.Template)
		if err != nil {
			return res, fmt.Errorf("template %s: %w", f.Template, err)
		}

		path := filepath.Join(dir, f.Name)
		created, err := writeNew(path, data)
		if err != nil {
			return res, fmt.Errorf("failed to create %s: %w", f.Name, err)
		}
		if created {
			res.Created = append(res.Created, path)
		} else {
			res.Skipped = append(res.Skipped, path)
		}
	}
	return res, nil
}

// writeNew creates path exclusively; it reports false when the file already exists.
func writeNew(path string, data []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}
