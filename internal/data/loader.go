package data

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source produces a full set of game data tables.
type Source interface {
	LoadTables(ctx context.Context) (*Tables, error)
}

// Files points at the four game data tables. Each file may be YAML or JSON:
// YAML is a superset of JSON, so the same decoder reads both.
type Files struct {
	Armaments        string `yaml:"armaments"`
	Reinforcements   string `yaml:"reinforcements"`
	CorrectionAttack string `yaml:"correction_attack"`
	CorrectionGraph  string `yaml:"correction_graph"`
}

// Base names of the table files inside a data directory.
const (
	ArmamentsFile        = "armaments"
	ReinforcementsFile   = "reinforcements"
	CorrectionAttackFile = "correction_attack"
	CorrectionGraphFile  = "correction_graph"
)

var tableExtensions = []string{".yaml", ".yml", ".json"}

// FilesIn returns the table files found in dir. For every table the first
// existing extension of .yaml, .yml, .json wins; when none exists the .json
// name is returned so the load error names a sensible path.
func FilesIn(dir string) Files {
	return Files{
		Armaments:        findTable(dir, ArmamentsFile),
		Reinforcements:   findTable(dir, ReinforcementsFile),
		CorrectionAttack: findTable(dir, CorrectionAttackFile),
		CorrectionGraph:  findTable(dir, CorrectionGraphFile),
	}
}

func findTable(dir, base string) string {
	for _, ext := range tableExtensions {
		p := filepath.Join(dir, base+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, base+".json")
}

// decodeFile читает YAML/JSON файл в out.
func decodeFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// LoadFiles reads the four tables from separate files.
func LoadFiles(files Files) (*Tables, error) {
	t := &Tables{}

	if err := decodeFile(files.Armaments, &t.Armaments); err != nil {
		return nil, fmt.Errorf("loading armaments: %w", err)
	}
	if err := decodeFile(files.Reinforcements, &t.Reinforcements); err != nil {
		return nil, fmt.Errorf("loading reinforcements: %w", err)
	}
	if err := decodeFile(files.CorrectionAttack, &t.CorrectionAttack); err != nil {
		return nil, fmt.Errorf("loading correction attack: %w", err)
	}
	if err := decodeFile(files.CorrectionGraph, &t.CorrectionGraph); err != nil {
		return nil, fmt.Errorf("loading correction graph: %w", err)
	}

	logLoaded(t)
	return t, nil
}

// LoadBundle reads all four tables from a single file with top-level keys
// armaments, reinforcements, correction_attack and correction_graph.
func LoadBundle(path string) (*Tables, error) {
	t := &Tables{}
	if err := decodeFile(path, t); err != nil {
		return nil, fmt.Errorf("loading bundle: %w", err)
	}
	logLoaded(t)
	return t, nil
}

// EncodeBundle serializes tables into the bundle format read by LoadBundle.
func EncodeBundle(t *Tables) ([]byte, error) {
	out, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding bundle: %w", err)
	}
	return out, nil
}

// DecodeBundle is the in-memory counterpart of LoadBundle.
func DecodeBundle(raw []byte) (*Tables, error) {
	t := &Tables{}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("decoding bundle: %w", err)
	}
	return t, nil
}

func logLoaded(t *Tables) {
	slog.Info("loaded game data",
		"armaments", len(t.Armaments),
		"reinforcements", len(t.Reinforcements),
		"correction_attack", len(t.CorrectionAttack),
		"correction_graph", len(t.CorrectionGraph))
}

// FileSource loads tables from disk. Bundle takes precedence over Files.
type FileSource struct {
	Files  Files
	Bundle string
}

// LoadTables implements Source.
func (s FileSource) LoadTables(_ context.Context) (*Tables, error) {
	if s.Bundle != "" {
		return LoadBundle(s.Bundle)
	}
	return LoadFiles(s.Files)
}
