package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Champion is the saved best individual of a run
type Champion struct {
	Run         string  `json:"run"`
	Encoding    string  `json:"encoding"`
	Seed        uint64  `json:"seed"`
	Generations int     `json:"generations"`
	Value       float64 `json:"value"`
	Fitness     float64 `json:"fitness"`
	// Code is the raw integer code; absent for real genes
	Code *uint64 `json:"code,omitempty"`
	Bits int     `json:"bits,omitempty"`
}

// SaveChampion saves the champion to a file
func SaveChampion(path string, c Champion) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (Champion, error) {
	var c Champion
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	err = json.Unmarshal(data, &c)
	return c, err
}
