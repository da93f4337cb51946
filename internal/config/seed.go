package config

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// seedEntries are copied from the system defaults into the user directory.
var seedEntries = []string{"config.toml", "templates", "palettes"}

// SeedUserDir copies the system defaults into userDir. Files that already
// exist in userDir are never overwritten, so running it again is a no-op.
func SeedUserDir(systemDir, userDir string) error {
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return err
	}
	if systemDir == "" {
		return nil
	}

	for _, name := range seedEntries {
		src := filepath.Join(systemDir, name)
		info, err := os.Stat(src)
		if err != nil {
			continue
		}
		dst := filepath.Join(userDir, name)
		if info.IsDir() {
			err = copyDir(src, dst)
		} else {
			err = copyFile(src, dst)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(out, 0755)
		case d.Type().IsRegular():
			return copyFile(path, out)
		default:
			return nil
		}
	})
}

// copyFile copies src to dst unless dst already exists.
func copyFile(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
