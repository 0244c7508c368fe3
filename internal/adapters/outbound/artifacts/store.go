package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/visualkraft/internal/domain"
)

// maxSuffix bounds how many "-N" variants Save tries before giving up.
const maxSuffix = 1000

// Store is a directory-backed implementation of domain.ArtifactStore.
type Store struct {
	dir string
}

// New creates a store rooted at dir. Nothing touches the disk until Prepare.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Prepare creates the output directory and checks it is writable.
func (s *Store) Prepare() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputUnavailable, err)
	}
	probe, err := os.CreateTemp(s.dir, ".write-check-*")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputUnavailable, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}

// Save writes data under name. An existing file is never overwritten; a
// numeric suffix is added instead.
func (s *Store) Save(name string, data []byte) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for i := 0; i < maxSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path := filepath.Join(s.dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", err
		}
		return path, f.Close()
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", name, maxSuffix)
}
