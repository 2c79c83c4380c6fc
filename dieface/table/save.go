package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smell-of-curry/dieface/dieface/internal"
	"gopkg.in/yaml.v3"
)

// Save writes c back to the file it was read from, keeping its format. A config
// that was not read from a file is written to <dir>/<identifier>.json. The
// written path is returned.
func Save(dir string, c Config) (string, error) {
	path := c.path
	if path == "" {
		if c.Identifier == "" {
			return "", errors.New("table has no identifier")
		}
		path = filepath.Join(dir, c.Identifier+".json")
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("encode table %s: %w", c.Identifier, err)
	}

	if err = os.MkdirAll(filepath.Dir(path), internal.DirectoryPermissions); err != nil {
		return "", fmt.Errorf("failed to create table directory: %w", err)
	}
	if err = writeFile(path, data); err != nil {
		return "", fmt.Errorf("write table %s: %w", path, err)
	}
	return path, nil
}

// writeFile replaces path through a temporary file so readers never see a
// partial table.
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, internal.FilePermissions)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
