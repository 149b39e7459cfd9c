// Package config parses the optional homeshift preset file. A preset holds
// the same values as the CLI flags so a recurring migration can be run
// without retyping them; explicit flags always win over preset values.
package config

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/homeshift/homeshift/pkg/errors"
)

// Preset mirrors the CLI flags of `homeshift migrate`.
type Preset struct {
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	DryRun      bool   `json:"dryRun,omitempty"`
	Verify      *bool  `json:"verify,omitempty"`
	ExcludeFile string `json:"excludeFile,omitempty"`
	LogDir      string `json:"logDir,omitempty"`
	Rsync       string `json:"rsync,omitempty"`
}

// Parse reads the preset file at path. The caller decides whether a missing
// file matters: Parse reports it as errors.FileNotFound so the CLI can
// ignore an absent default preset but fail on an explicitly passed one.
func Parse(path string) (Preset, error) {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preset{}, errors.FileNotFound{Path: path}
		}
		return Preset{}, errors.WithContext(err, "read preset")
	}

	var preset Preset
	if err := yaml.Unmarshal(contents, &preset); err != nil {
		return Preset{}, errors.WithContext(err, "parse preset")
	}
	return preset, nil
}
