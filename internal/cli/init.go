package cli

import (
	"io"
	"path/filepath"

	"github.com/aretw0/envchecker/internal/scaffold"
)

// RunInit scaffolds the starter files into dir and reports what happened.
func RunInit(dir string, w io.Writer) error {
	res, err := scaffold.Init(dir)
	if err != nil {
		return err
	}

	for _, p := range res.Created {
		printSystemMessage(w, "Created %s", filepath.Base(p))
	}
	for _, p := range res.Skipped {
		printSystemMessage(w, "%s already exists, skipping creation.", filepath.Base(p))
	}
	if len(res.Created) > 0 {
		printSystemMessage(w, "Copy .env.example to .env and update the values.")
	}
	return nil
}
