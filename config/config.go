package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/travel-diary/canon-engine/codebook"
	"gopkg.in/yaml.v3"
)

// Config is the complete, top-level configuration for the canon engine.
type Config struct {
	Linker     LinkerConfig     `yaml:"linker"`
	Tour       TourConfig       `yaml:"tour"`
	Validation ValidationConfig `yaml:"validation"`
	Output     OutputConfig     `yaml:"output"`
}

// LinkerConfig configures the trip-linking pass (C4).
type LinkerConfig struct {
	// ChangeModeCode is the purpose code marking a transfer-only
	// destination: a segment ending there may be merged with the next
	// one, subject to MaxDwellTime and DwellBufferDistance.
	ChangeModeCode int `yaml:"changeModeCode"`
	// TransitModeCodes is the set of mode_type codes considered
	// transit when selecting the representative mode of a linked trip.
	TransitModeCodes []int `yaml:"transitModeCodes"`
	// MaxDwellTime is the maximum gap, in minutes, between one
	// segment's arrival and the next segment's departure for the two
	// to be merged.
	MaxDwellTime int `yaml:"maxDwellTimeMinutes"`
	// DwellBufferDistance is the maximum great-circle distance, in
	// meters, between one segment's destination and the next
	// segment's origin for the two to be merged.
	DwellBufferDistance float64 `yaml:"dwellBufferDistanceMeters"`
}

// TourConfig configures the tour-extraction pass (C5).
type TourConfig struct {
	// DistanceThresholds maps an anchor location type to the maximum
	// distance, in meters, at which a trip endpoint is still
	// considered "at" that anchor.
	DistanceThresholds map[codebook.LocationType]float64 `yaml:"distanceThresholdsMeters"`
	// ModeHierarchy orders mode types from lowest to highest tour-mode
	// priority; the last entry wins when multiple modes appear in a
	// tour.
	ModeHierarchy []codebook.ModeType `yaml:"modeHierarchy"`
	// PurposePriorityByPersonCategory maps a person category to a
	// purpose-category → priority table; lower integer wins.
	PurposePriorityByPersonCategory map[string]map[codebook.PurposeCategory]int `yaml:"purposePriorityByPersonCategory"`
	// DefaultPurposePriority is used when a purpose is absent from the
	// person's category table.
	DefaultPurposePriority int `yaml:"defaultPurposePriority"`
	// DefaultActivityDurationMinutes is the fallback activity duration
	// used to break primary-purpose ties when the true duration is
	// unknown.
	DefaultActivityDurationMinutes int `yaml:"defaultActivityDurationMinutes"`
	// PersonTypeMapping maps a PersonType to the coarse person
	// category (WORKER/STUDENT/OTHER) used to select a purpose
	// priority table.
	PersonTypeMapping map[codebook.PersonType]string `yaml:"personTypeMapping"`
	// CheckMultidayGaps, when true, forces a tour boundary whenever
	// day_id jumps by more than one for the same person.
	CheckMultidayGaps bool `yaml:"checkMultidayGaps"`
}

// ValidationConfig holds validation settings (C3). Validate checks
// them, but the container's substrate does not read them: it uses
// validation.RowBatchSize and validation.MaxErrorsPerRule, and the CLI
// takes the step from its --step flag.
type ValidationConfig struct {
	// RowBatchSize is the number of rows validated per batch during
	// row-level validation.
	RowBatchSize int `yaml:"rowBatchSize"`
	// MaxErrorsPerRule caps the number of reported errors for any
	// single rule; further violations are dropped uncounted.
	MaxErrorsPerRule int `yaml:"maxErrorsPerRule"`
	// Step is the pipeline step under which required-field metadata is
	// evaluated ("raw", "linked", "tours", or "final").
	Step string `yaml:"step"`
}

// OutputConfig configures report output.
type OutputConfig struct {
	Format          string `yaml:"format"` // json or text
	GroupBySeverity bool   `yaml:"groupBySeverity"`
	MaxEntries      int    `yaml:"maxEntries"` // 0 = unlimited
}

// DefaultConfig returns a configuration populated with the engine's
// built-in defaults, as described by spec §4.4/§5.3.
func DefaultConfig() *Config {
	return &Config{
		Linker: LinkerConfig{
			ChangeModeCode:      int(codebook.PurposeChangeMode),
			TransitModeCodes:    []int{int(codebook.ModeTransit)},
			MaxDwellTime:        120,
			DwellBufferDistance: 100,
		},
		Tour: TourConfig{
			DistanceThresholds: map[codebook.LocationType]float64{
				codebook.LocationHome:   100,
				codebook.LocationWork:   100,
				codebook.LocationSchool: 100,
			},
			ModeHierarchy: []codebook.ModeType{
				codebook.ModeWalk,
				codebook.ModeBike,
				codebook.ModeSchoolBus,
				codebook.ModeHOV,
				codebook.ModeDriveAlone,
				codebook.ModeTransit,
			},
			PurposePriorityByPersonCategory: map[string]map[codebook.PurposeCategory]int{
				"WORKER": {
					codebook.PurposeWork:        0,
					codebook.PurposeWorkRelated: 1,
					codebook.PurposeSchool:      5,
				},
				"STUDENT": {
					codebook.PurposeSchool:        0,
					codebook.PurposeSchoolRelated: 1,
					codebook.PurposeWork:          5,
				},
				"OTHER": {},
			},
			DefaultPurposePriority:         9,
			DefaultActivityDurationMinutes: 30,
			PersonTypeMapping: map[codebook.PersonType]string{
				codebook.PersonFullTimeWorker: "WORKER",
				codebook.PersonPartTimeWorker: "WORKER",
				codebook.PersonUniversity:     "STUDENT",
				codebook.PersonDrivingAgeChild: "STUDENT",
				codebook.PersonChild5to15:      "STUDENT",
				codebook.PersonChildUnder5:     "OTHER",
				codebook.PersonNonWorkingAdult: "OTHER",
				codebook.PersonRetired:         "OTHER",
			},
			CheckMultidayGaps: true,
		},
		Validation: ValidationConfig{
			RowBatchSize:     10000,
			MaxErrorsPerRule: 10,
			Step:             "raw",
		},
		Output: OutputConfig{
			Format:          "text",
			GroupBySeverity: true,
			MaxEntries:      0,
		},
	}
}

// LoadFile loads configuration from a YAML file, overlaying it onto
// DefaultConfig. An empty path returns the defaults unchanged.
func LoadFile(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if !filepath.IsAbs(configPath) && strings.Contains(configPath, "..") {
		return nil, fmt.Errorf("invalid config file path: %s", configPath)
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // Path is validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	return LoadBytes(data, cfg)
}

// LoadBytes parses YAML bytes onto the given base config (or a fresh
// default config if base is nil) and validates the result.
func LoadBytes(data []byte, base *Config) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return base, nil
}

// SaveConfig writes the configuration to a YAML file.
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Linker.MaxDwellTime < 0 {
		return fmt.Errorf("linker.maxDwellTimeMinutes cannot be negative")
	}
	if c.Linker.DwellBufferDistance < 0 {
		return fmt.Errorf("linker.dwellBufferDistanceMeters cannot be negative")
	}

	for anchor, dist := range c.Tour.DistanceThresholds {
		if dist < 0 {
			return fmt.Errorf("tour.distanceThresholdsMeters[%s] cannot be negative", anchor)
		}
	}

	if c.Validation.RowBatchSize <= 0 {
		return fmt.Errorf("validation.rowBatchSize must be positive")
	}
	if c.Validation.MaxErrorsPerRule <= 0 {
		return fmt.Errorf("validation.maxErrorsPerRule must be positive")
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format: %s (valid: json, text)", c.Output.Format)
	}

	return nil
}

// PurposePriority returns the priority of a purpose category for a
// given person category, falling back to DefaultPurposePriority.
func (c *TourConfig) PurposePriority(personCategory string, purpose codebook.PurposeCategory) int {
	if table, ok := c.PurposePriorityByPersonCategory[personCategory]; ok {
		if p, ok := table[purpose]; ok {
			return p
		}
	}
	return c.DefaultPurposePriority
}

// ModeRank returns the position of a mode in ModeHierarchy (higher is
// higher priority), or -1 if the mode is absent.
func (c *TourConfig) ModeRank(mode codebook.ModeType) int {
	for i, m := range c.ModeHierarchy {
		if m == mode {
			return i
		}
	}
	return -1
}

// IsTransitMode reports whether a mode_type code is in the linker's
// transit mode set.
func (c *LinkerConfig) IsTransitMode(modeType int) bool {
	for _, m := range c.TransitModeCodes {
		if m == modeType {
			return true
		}
	}
	return false
}

// GenerateDefaultConfigFile writes the built-in default configuration
// to configPath.
func GenerateDefaultConfigFile(configPath string) error {
	return DefaultConfig().SaveConfig(configPath)
}
