package pipeline

import (
	"os"

	"github.com/sysviz/sysviz/pkg/errors"
	"github.com/sysviz/sysviz/pkg/model"
	"github.com/sysviz/sysviz/pkg/sysml"
)

// Parse extracts a model graph from the configured source.
func Parse(opts Options) (*model.Graph, error) {
	if err := loadSource(&opts); err != nil {
		return nil, err
	}
	return sysml.Parse(opts.Source)
}

// loadSource reads SourcePath into Source so later stages (and cache keys)
// work from the text itself. A no-op when Source is already populated.
func loadSource(opts *Options) error {
	if opts.Source != "" || opts.SourcePath == "" {
		return nil
	}

	data, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "model file not found: %s", opts.SourcePath)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", opts.SourcePath)
	}
	opts.Source = string(data)
	return nil
}
