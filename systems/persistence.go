package systems

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"

	cfg "github.com/automoto/ember/config"
	"github.com/automoto/ember/input"
)

// SavedBindings is the on-disk form of user binding overrides. It stores a
// full InputConfig so a load can simply replace the manager's state.
type SavedBindings struct {
	Version int             `json:"version"`
	Input   cfg.InputConfig `json:"input"`
}

const bindingsVersion = 1

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for bindings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "ember",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadBindings loads saved user bindings from disk. A nil result with a
// nil error means no overrides exist and the defaults apply.
func LoadBindings() (*cfg.InputConfig, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("bindings")
	if err != nil {
		log.Printf("Warning: Could not load bindings: %v", err)
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	var saved SavedBindings
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("Warning: Could not parse saved bindings: %v", err)
		return nil, err
	}
	if saved.Version != bindingsVersion {
		log.Printf("Warning: Saved bindings version %d unsupported, using defaults", saved.Version)
		return nil, nil
	}
	if err := saved.Input.Validate(); err != nil {
		log.Printf("Warning: Saved bindings invalid: %v", err)
		return nil, err
	}
	return &saved.Input, nil
}

// SaveBindings writes the given configuration to disk as the user's
// binding overrides.
func SaveBindings(c *cfg.InputConfig) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(&SavedBindings{Version: bindingsVersion, Input: *c})
	if err != nil {
		log.Printf("Warning: Could not serialize bindings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("bindings", data); err != nil {
		log.Printf("Warning: Could not save bindings: %v", err)
		return err
	}
	return nil
}

// ApplySavedBindings loads any saved overrides and applies them to the
// manager, falling back to the built-in defaults on any failure.
func ApplySavedBindings(m *input.Manager) {
	saved, err := LoadBindings()
	if err != nil || saved == nil {
		return
	}
	if err := m.LoadConfiguration(saved); err != nil {
		log.Printf("Warning: Could not apply saved bindings: %v", err)
		if err := m.LoadConfiguration(cfg.Input); err != nil {
			log.Printf("Warning: Could not restore default bindings: %v", err)
		}
	}
}
