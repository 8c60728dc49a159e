// Package toml loads the associate-to-manager roster from a TOML file.
// The roster is read-only input to the pipeline; the directory resolves
// its path through viper so deployments can relocate it via config.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/yardops/idlereport/internal/domain"
	"github.com/yardops/idlereport/internal/ports"
)

const (
	configName      = "config"
	configType      = "toml"
	rosterPathKey   = "roster.path"
	rosterConfigDir = ".idlereport"
	rosterFile      = "roster.toml"
)

type Directory struct {
	managers map[domain.AssociateID]domain.ManagerID
}

var _ ports.RosterDirectory = (*Directory)(nil)

// NewDirectory resolves the roster path from config and loads it once.
func NewDirectory(cfg *viper.Viper) (*Directory, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, rosterConfigDir))
	cfg.SetDefault(rosterPathKey, filepath.Join(homeDir, rosterConfigDir, rosterFile))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return NewDirectoryFromFile(cfg.GetString(rosterPathKey))
}

// NewDirectoryFromFile loads a roster file directly.
func NewDirectoryFromFile(path string) (*Directory, error) {
	if path == "" {
		return nil, errors.New("roster path is empty")
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode roster file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	managers := make(map[domain.AssociateID]domain.ManagerID)
	for _, entry := range file.Managers {
		manager := domain.ManagerID(strings.TrimSpace(entry.ID))
		if manager == "" {
			return nil, errors.New("roster entry with empty manager id")
		}
		for _, raw := range entry.Associates {
			associate := domain.AssociateID(strings.TrimSpace(raw))
			if associate == "" {
				continue
			}
			if existing, ok := managers[associate]; ok && existing != manager {
				return nil, fmt.Errorf("associate %s listed under both %s and %s", associate, existing, manager)
			}
			managers[associate] = manager
		}
	}

	return &Directory{managers: managers}, nil
}

func (d *Directory) ManagerOf(ctx context.Context, id domain.AssociateID) (domain.ManagerID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if manager, ok := d.managers[id]; ok {
		return manager, nil
	}

	return "", fmt.Errorf("%w: %s", domain.ErrUnknownManager, id)
}

// Size is the number of associates the roster covers.
func (d *Directory) Size() int {
	return len(d.managers)
}
