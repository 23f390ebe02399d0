package localkv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store guarda un valor string por clave, un archivo por clave, bajo un
// directorio del dispositivo. Es el espejo local del localStorage del
// cliente web: durable entre sesiones, acotado a esta máquina.
type Store struct {
	dir string
}

func New(dir string) *Store {
	_ = os.MkdirAll(dir, 0o755)
	return &Store{dir: dir}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *Store) Get(key string) (string, bool) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (s *Store) Set(key, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0o600)
}

func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
