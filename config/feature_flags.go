package config

import (
	"sort"
	"strings"
	"sync"
)

// FeatureFlags manages feature toggles.
// Every flag defaults to the behaviour users already rely on; turning one on
// changes the console output, so they are opt-in only.
type FeatureFlags struct {
	mu sync.RWMutex

	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool
}

// Predefined feature flag names.
const (
	// === Report Features ===
	FeatureReportKeyFailingByIndex = "report.key_failing_by_index" // Key failing counts by "name (#n)" instead of name

	// === Prompt Features ===
	FeaturePromptDistinctRangeMessage = "prompt.distinct_range_message" // Separate hint for out-of-range grades
)

// LoadFeatureFlags loads feature flags from environment variables.
func LoadFeatureFlags() *FeatureFlags {
	ff := NewFeatureFlags()
	ff.loadFromEnvironment()
	return ff
}

// NewFeatureFlags returns the flag set with defaults only.
func NewFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{
		features: make(map[string]*Feature),
	}
	ff.initializeDefaults()
	return ff
}

// initializeDefaults sets up all features with default values.
func (ff *FeatureFlags) initializeDefaults() {
	ff.features[FeatureReportKeyFailingByIndex] = &Feature{
		Name:        FeatureReportKeyFailingByIndex,
		Description: "Key failing-grade counts by student position so duplicate names do not collide",
		Enabled:     false,
	}

	ff.features[FeaturePromptDistinctRangeMessage] = &Feature{
		Name:        FeaturePromptDistinctRangeMessage,
		Description: "Tell the user a grade is out of range instead of repeating \"Expected a number\"",
		Enabled:     false,
	}
}

// loadFromEnvironment applies FEATURE_<NAME> overrides,
// e.g. FEATURE_REPORT_KEY_FAILING_BY_INDEX=true.
func (ff *FeatureFlags) loadFromEnvironment() {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	for name, f := range ff.features {
		f.Enabled = getEnvBool(EnvKey(name), f.Enabled)
	}
}

// EnvKey returns the environment variable that overrides a flag.
func EnvKey(name string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return "FEATURE_" + strings.ToUpper(r.Replace(name))
}

// IsEnabled checks if a feature is enabled. Unknown features are disabled.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	if ff == nil {
		return false
	}

	ff.mu.RLock()
	defer ff.mu.RUnlock()

	f, ok := ff.features[name]
	if !ok {
		return false
	}
	return f.Enabled
}

// EnabledFeatures returns the names of enabled features, sorted.
func (ff *FeatureFlags) EnabledFeatures() []string {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	names := make([]string, 0, len(ff.features))
	for name, f := range ff.features {
		if f.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
