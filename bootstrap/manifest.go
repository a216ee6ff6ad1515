package bootstrap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// InitManifest describes how to initialize the execution-layer node: which
// genesis file to import and where its database lives. Node internals are
// out of scope here, the manifest is plain file plumbing.
type InitManifest struct {
	GenesisPath string `json:"genesis_path"`
	DataDir     string `json:"datadir"`
	ChainID     uint64 `json:"chain_id"`
}

func (m InitManifest) Check() error {
	if m.GenesisPath == "" {
		return errors.New("missing genesis path")
	}
	if m.DataDir == "" {
		return errors.New("missing datadir")
	}
	if m.ChainID == 0 {
		return errors.New("missing chain ID")
	}
	return nil
}

// WriteInitManifest validates and writes the manifest as indented JSON.
func WriteInitManifest(path string, m InitManifest) error {
	if err := m.Check(); err != nil {
		return fmt.Errorf("invalid init manifest: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal init manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write init manifest: %w", err)
	}
	return nil
}
