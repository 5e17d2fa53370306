package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ProgressKey is the kv key under which the profile document is stored.
const ProgressKey = "mathrush.progress"

// ErrCorruptProgress is returned by Load when the stored document is not
// valid JSON or does not match the profile schema.
var ErrCorruptProgress = errors.New("corrupt progress data")

// progressRepo implements ProgressRepo on the kv table.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Load(ctx context.Context) (*ProgressData, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, ProgressKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query progress: %w", err)
	}

	if err := validateProgress([]byte(raw)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptProgress, err)
	}

	var data ProgressData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptProgress, err)
	}
	return &data, nil
}

func (r *progressRepo) Save(ctx context.Context, data *ProgressData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		ProgressKey, string(raw), formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, ProgressKey); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// progressSchema describes the stored profile document. Unknown fields are
// allowed so older binaries can read newer profiles.
var progressSchema = map[string]any{
	"type":     "object",
	"required": []any{"statistics", "achievements"},
	"properties": map[string]any{
		"achievements": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"statistics": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topicsPerformance": map[string]any{
					"type": []any{"object", "null"},
					"additionalProperties": map[string]any{
						"type":     "object",
						"required": []any{"attempts", "correct"},
						"properties": map[string]any{
							"attempts": map[string]any{"type": "integer", "minimum": 0},
							"correct":  map[string]any{"type": "integer", "minimum": 0},
						},
					},
				},
				"recentScores": map[string]any{
					"type":  []any{"array", "null"},
					"items": map[string]any{"type": "integer"},
				},
				"bestScores": map[string]any{
					"type":                 []any{"object", "null"},
					"additionalProperties": map[string]any{"type": "integer"},
				},
				"currentStreak":            map[string]any{"type": "integer", "minimum": 0},
				"longestStreak":            map[string]any{"type": "integer", "minimum": 0},
				"weeklyGoal":               map[string]any{"type": "integer", "minimum": 0},
				"weeklyProgress":           map[string]any{"type": "integer", "minimum": 0},
				"totalPlayTime":            map[string]any{"type": "integer", "minimum": 0},
				"gamesPlayed":              map[string]any{"type": "integer", "minimum": 0},
				"dailyChallengesCompleted": map[string]any{"type": "integer", "minimum": 0},
				"recentActivities": map[string]any{
					"type": []any{"array", "null"},
					"items": map[string]any{
						"type":     "object",
						"required": []any{"problem", "correct"},
					},
				},
			},
		},
	},
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func progressValidator() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go literals.
		defBytes, err := json.Marshal(progressSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://progress.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// validateProgress checks raw against the profile schema.
func validateProgress(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := progressValidator()
	if err != nil {
		return fmt.Errorf("compile progress schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
