package supplemental

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/repositories"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileRepository serves the curated dataset from a JSON or YAML file.
// The file is read on first use; a missing file is retried on the next call.
type FileRepository struct {
	path string

	mu      sync.Mutex
	records []entities.SupplementalRecord
	loaded  bool
}

// NewFileRepository creates a repository reading path
func NewFileRepository(path string) repositories.SupplementalRepository {
	return &FileRepository{path: path}
}

// List returns every record in file order
func (r *FileRepository) List(ctx context.Context) ([]entities.SupplementalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		records, err := readDataset(r.path)
		if err != nil {
			return nil, err
		}
		r.records = records
		r.loaded = true
	}

	out := make([]entities.SupplementalRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func readDataset(path string) ([]entities.SupplementalRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("supplemental data file is not available")
		}
		return nil, apperrors.NewInternalError("failed to read supplemental data file", err)
	}

	var dataset entities.SupplementalDataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &dataset)
	default:
		err = json.Unmarshal(content, &dataset)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to parse supplemental data file %s", filepath.Base(path)), err)
	}

	return dataset.Hospitals, nil
}
