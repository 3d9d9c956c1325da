// Package project handles persistence: JSON project documents, the
// URL-query share-string encoding of a hinge configuration, and the TOML
// application config under ~/.hingegen.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// Project ties a parameter set and pivot layout together for save/load.
type Project struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Params      model.Params `json:"params"`
	Layout      model.Layout `json:"layout"`
	EqualLength bool         `json:"equal_length"`
}

// NewID mints a short document ID.
func NewID() string {
	return uuid.New().String()[:8]
}

// New creates a named project with a fresh short ID.
func New(name string, params model.Params, layout model.Layout) Project {
	return Project{
		ID:     NewID(),
		Name:   name,
		Params: params,
		Layout: layout,
	}
}

// Save persists a project to the given path as indented JSON, creating any
// missing parent directories.
func Save(path string, p Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path and validates its parameters.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("parse project %s: %w", path, err)
	}
	if err := p.Params.Validate(); err != nil {
		return Project{}, fmt.Errorf("project %s: %w", path, err)
	}
	return p, nil
}
