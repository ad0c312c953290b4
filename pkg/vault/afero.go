package vault

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"attachmint/pkg/errors"
)

// fsVault implements Provider over an afero filesystem whose root is the
// vault root. Production use wraps the OS filesystem in a BasePathFs; tests
// use a MemMapFs.
type fsVault struct {
	fs afero.Fs
}

// NewFS returns a Provider backed by the given afero filesystem.
func NewFS(afs afero.Fs) Provider {
	return &fsVault{fs: afs}
}

// NewOS returns a Provider rooted at the given OS directory.
func NewOS(root string) Provider {
	return &fsVault{fs: afero.NewBasePathFs(afero.NewOsFs(), root)}
}

func (v *fsVault) ListFiles() ([]string, error) {
	return v.walk("")
}

func (v *fsVault) ListFolder(folder string, recursive bool) ([]string, error) {
	if recursive {
		return v.walk(folder)
	}
	entries, err := afero.ReadDir(v.fs, v.osPath(folder))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultList, "failed to list folder %q", folder)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, joinVaultPath(folder, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (v *fsVault) walk(folder string) ([]string, error) {
	var files []string
	root := v.osPath(folder)
	err := afero.Walk(v.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if info.IsDir() {
			// Hidden folders (.obsidian, .git, .trash) are host
			// internals, not vault content.
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		files = append(files, vaultPath(path))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultList, "failed to walk %q", folder)
	}
	sort.Strings(files)
	return files, nil
}

func (v *fsVault) FileExists(path string) bool {
	info, err := v.fs.Stat(v.osPath(path))
	return err == nil && !info.IsDir()
}

func (v *fsVault) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(v.fs, v.osPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultRead, "failed to read %q", path)
	}
	return data, nil
}

func (v *fsVault) CreateFolder(path string) error {
	if err := v.fs.MkdirAll(v.osPath(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create folder %q", path)
	}
	return nil
}

func (v *fsVault) RenameFile(oldPath, newPath string) error {
	if !v.FileExists(oldPath) {
		return errors.Newf(errors.ErrFileNotFound, "no file at %q", oldPath)
	}
	if v.FileExists(newPath) {
		return errors.Newf(errors.ErrRename, "destination %q already exists", newPath)
	}
	if err := v.fs.Rename(v.osPath(oldPath), v.osPath(newPath)); err != nil {
		return errors.Wrapf(err, errors.ErrRename, "failed to rename %q to %q", oldPath, newPath)
	}
	return nil
}

// osPath converts a vault path to the adapter filesystem's form.
func (v *fsVault) osPath(p string) string {
	if p == "" {
		return "."
	}
	return filepath.FromSlash(p)
}

// vaultPath converts an adapter filesystem path back to vault form.
func vaultPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	if p == "." {
		return ""
	}
	return p
}

func joinVaultPath(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
