package export

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

// File is an encoded variant ready to be written.
type File struct {
	Name string
	Data []byte
}

// Encode renders every variant as PNG in memory.
func Encode(variants []Variant) ([]File, error) {
	files := make([]File, 0, len(variants))
	for _, v := range variants {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, v.Image, imaging.PNG); err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "encode %s", v.Filename)
		}
		files = append(files, File{Name: v.Filename, Data: buf.Bytes()})
	}
	return files, nil
}

// ImageSetDir returns the imageset directory of name under dir.
func ImageSetDir(dir, name string) string {
	return filepath.Join(dir, name+".imageset")
}

// WriteImageSet writes files and the manifest to <dir>/<name>.imageset.
//
// Everything is staged in a temporary sibling directory that is renamed into
// place once complete, so a failure never leaves a partial imageset behind. An
// existing imageset of the same name is replaced.
func WriteImageSet(dir, name string, files []File, m Manifest) (string, error) {
	if err := errors.ValidateSpriteName(name); err != nil {
		return "", err
	}
	manifest, err := m.Marshal()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "marshal manifest")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create output directory")
	}

	tmp, err := os.MkdirTemp(dir, "."+name+".imageset-*")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create staging directory")
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(tmp)
		}
	}()

	all := append(append([]File(nil), files...), File{Name: ManifestFile, Data: manifest})
	for _, f := range all {
		if f.Name == "" || filepath.Base(f.Name) != f.Name || f.Name == "." || f.Name == ".." {
			return "", errors.New(errors.ErrCodeInvalidPath, "invalid file name %q", f.Name)
		}
		if err := os.WriteFile(filepath.Join(tmp, f.Name), f.Data, 0644); err != nil {
			return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", f.Name)
		}
	}
	// MkdirTemp creates 0700 directories.
	if err := os.Chmod(tmp, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "chmod staging directory")
	}

	target := ImageSetDir(dir, name)
	if err := replaceDir(tmp, target); err != nil {
		return "", err
	}
	committed = true
	return target, nil
}

// replaceDir moves src to dst, swapping out any existing dst.
func replaceDir(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		old := src + ".old"
		if err := os.Rename(dst, old); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "move aside %s", filepath.Base(dst))
		}
		if err := os.Rename(src, dst); err != nil {
			_ = os.Rename(old, dst)
			return errors.Wrap(errors.ErrCodeIO, err, "commit %s", filepath.Base(dst))
		}
		_ = os.RemoveAll(old)
		return nil
	}
	if err := os.Rename(src, dst); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "commit %s", filepath.Base(dst))
	}
	return nil
}
