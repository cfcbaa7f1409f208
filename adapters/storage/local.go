package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"burntest/internal/errors"
	"burntest/ports"

	"go.uber.org/zap"
)

// LocalStore keeps reports as files in one directory
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

var _ ports.ReportStore = (*LocalStore)(nil)

// NewLocalStore creates the report directory when missing
func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.StorageError("failed to create report directory", err)
	}
	return &LocalStore{dir: dir, logger: logger.Named("local_reports")}, nil
}

// Dir returns the report directory
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(ctx context.Context, name string, content io.Reader) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".report-*")
	if err != nil {
		return errors.StorageError("failed to create report file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return errors.StorageError("failed to write report", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.StorageError("failed to write report", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.StorageError("failed to store report", err)
	}
	s.logger.Debug("report saved", zap.String("name", name))
	return nil
}

// List returns the regular, non-hidden files of the directory
func (s *LocalStore) List(ctx context.Context) ([]ports.ReportObject, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.StorageError("failed to list reports", err)
	}

	objects := make([]ports.ReportObject, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		objects = append(objects, ports.ReportObject{
			Name:      entry.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	return objects, nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.NotFound("report")
	}
	if err != nil {
		return nil, errors.StorageError("failed to open report", err)
	}
	return f, nil
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("report")
		}
		return errors.StorageError("failed to delete report", err)
	}
	s.logger.Debug("report deleted", zap.String("name", name))
	return nil
}

// path resolves a bare file name inside the directory
func (s *LocalStore) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// ValidateName rejects names that are empty, hidden, or reach outside the store
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.InvalidInput("invalid file name")
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, 0):
		return errors.InvalidInput("invalid file name")
	case strings.HasPrefix(name, "."):
		return errors.InvalidInput("invalid file name")
	}
	return nil
}
