package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Managers []managerSchema `toml:"managers"`
}

type managerSchema struct {
	ID         string   `toml:"id"`
	Name       string   `toml:"name,omitempty"`
	Associates []string `toml:"associates"`
}

func (f *fileSchema) applyDefaults() {
	if f.Version == 0 {
		f.Version = currentSchemaVersion
	}
}

func (f fileSchema) validateVersion() error {
	if f.Version != 0 && f.Version != currentSchemaVersion {
		return fmt.Errorf("unsupported roster schema version %d", f.Version)
	}

	return nil
}
