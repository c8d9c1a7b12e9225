// Package feeds loads the already-structured JSON documents the pipeline
// consumes: schedule records, prediction records, team stat lines, and the
// team alias table. Loaders return errors; the pipeline binary degrades a
// failed feed to an empty collection so a bad file means fewer picks, never
// a crash.
package feeds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/beaubranton4/d1-picks/pkg/models"
)

// LoadSchedule reads a schedule feed file (JSON array of schedule records)
func LoadSchedule(path string) ([]models.ScheduleRecord, error) {
	var records []models.ScheduleRecord
	if err := loadJSON(path, &records); err != nil {
		return nil, fmt.Errorf("feeds: loading schedule: %w", err)
	}
	return records, nil
}

// LoadPredictions reads a prediction feed file (JSON array of prediction
// records; each probability describes the record's second-named team)
func LoadPredictions(path string) ([]models.PredictionRecord, error) {
	var records []models.PredictionRecord
	if err := loadJSON(path, &records); err != nil {
		return nil, fmt.Errorf("feeds: loading predictions: %w", err)
	}
	return records, nil
}

// LoadTeamStats reads a team-stats file (JSON object slug → stat line)
func LoadTeamStats(path string) (map[string]models.TeamStatLine, error) {
	var stats map[string]models.TeamStatLine
	if err := loadJSON(path, &stats); err != nil {
		return nil, fmt.Errorf("feeds: loading team stats: %w", err)
	}
	return stats, nil
}

// LoadAliasTable reads the alias table (JSON object canonical slug → list
// of lowercase aliases). Collision checking happens in identity.NewResolver,
// not here.
func LoadAliasTable(path string) (map[string][]string, error) {
	var table map[string][]string
	if err := loadJSON(path, &table); err != nil {
		return nil, fmt.Errorf("feeds: loading alias table: %w", err)
	}
	return table, nil
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
