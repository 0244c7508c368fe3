package domain

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultAxeScriptURL is the axe-core build injected by the accessibility probe.
const DefaultAxeScriptURL = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js"

// HarnessConfig holds run configuration loaded from .visualkraft.yaml.
type HarnessConfig struct {
	BaseURL            string             `yaml:"base_url"              json:"base_url"`
	OutputDir          string             `yaml:"output_dir"            json:"output_dir"`
	Viewports          []Viewport         `yaml:"viewports"             json:"viewports"`
	Themes             []string           `yaml:"themes"                json:"themes"`
	Weights            map[string]float64 `yaml:"weights"               json:"weights,omitempty"`
	Concurrency        int                `yaml:"concurrency"           json:"concurrency"`
	SettleDelayMs      int                `yaml:"settle_delay_ms"       json:"settle_delay_ms"`
	ThemeSettleDelayMs int                `yaml:"theme_settle_delay_ms" json:"theme_settle_delay_ms"`
	OperationTimeoutMs int                `yaml:"operation_timeout_ms"  json:"operation_timeout_ms"`
	RunTimeoutMs       int                `yaml:"run_timeout_ms"        json:"run_timeout_ms"`
	AxeScriptURL       string             `yaml:"axe_script_url"        json:"axe_script_url"`
	MinScore           int                `yaml:"min_score"             json:"min_score"`
	Tokens             TokenConfig        `yaml:"tokens"                json:"tokens"`
	Browser            BrowserConfig      `yaml:"browser"               json:"browser"`
}

// TokenConfig names the custom properties and class substrings the token probes look for.
type TokenConfig struct {
	DesignProperty     string   `yaml:"design_property"     json:"design_property"`
	TypographyProperty string   `yaml:"typography_property" json:"typography_property"`
	BrandProperty      string   `yaml:"brand_property"      json:"brand_property"`
	ComponentClass     string   `yaml:"component_class"     json:"component_class"`
	ElevationClass     string   `yaml:"elevation_class"     json:"elevation_class"`
	TypographyClass    string   `yaml:"typography_class"    json:"typography_class"`
	GlassClass         string   `yaml:"glass_class"         json:"glass_class"`
	ThemeClasses       []string `yaml:"theme_classes"       json:"theme_classes"`
}

// BrowserConfig controls how the headless browser is launched.
type BrowserConfig struct {
	Bin          string `yaml:"bin"            json:"bin,omitempty"`
	Headless     bool   `yaml:"headless"       json:"headless"`
	NoSandbox    bool   `yaml:"no_sandbox"     json:"no_sandbox"`
	IdleWindowMs int    `yaml:"idle_window_ms" json:"idle_window_ms"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		BaseURL:            "http://localhost:3000",
		OutputDir:          "screenshots/validation",
		Viewports:          DefaultViewports(),
		Themes:             DefaultThemes(),
		Weights:            DefaultWeights(),
		Concurrency:        1,
		SettleDelayMs:      1000,
		ThemeSettleDelayMs: 500,
		OperationTimeoutMs: 30000,
		RunTimeoutMs:       0,
		AxeScriptURL:       DefaultAxeScriptURL,
		MinScore:           0,
		Tokens:             DefaultTokenConfig(),
		Browser: BrowserConfig{
			Headless:     true,
			IdleWindowMs: 500,
		},
	}
}

func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		DesignProperty:     "--md-sys-color-primary",
		TypographyProperty: "--md-sys-typescale-body-large-font",
		BrandProperty:      "--brand-primary",
		ComponentClass:     "md-",
		ElevationClass:     "elevation",
		TypographyClass:    "typescale",
		GlassClass:         "glass",
		ThemeClasses:       []string{"light", "dark"},
	}
}

// Properties lists every root custom property the probes read.
func (t TokenConfig) Properties() []string {
	var props []string
	for _, p := range []string{t.DesignProperty, t.TypographyProperty, t.BrandProperty} {
		if p != "" {
			props = append(props, p)
		}
	}
	return props
}

func (c HarnessConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

func (c HarnessConfig) ThemeSettleDelay() time.Duration {
	return time.Duration(c.ThemeSettleDelayMs) * time.Millisecond
}

func (c HarnessConfig) OperationTimeout() time.Duration {
	return time.Duration(c.OperationTimeoutMs) * time.Millisecond
}

// RunTimeout returns the overall deadline of a run; zero means none.
func (c HarnessConfig) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutMs) * time.Millisecond
}

// EffectiveWeight returns the configured weight for a category,
// falling back to the default weight if not specified.
func (c HarnessConfig) EffectiveWeight(category string) float64 {
	if w, ok := c.Weights[category]; ok {
		return w
	}
	return DefaultWeights()[category]
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c HarnessConfig) Validate() error {
	// 1. base_url must be an absolute http(s) URL
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL)
	}

	// 2. output_dir must be set
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}

	// 3. viewports must be non-empty, unique, positive, with a known device class
	if len(c.Viewports) == 0 {
		return fmt.Errorf("at least one viewport is required")
	}
	seen := make(map[string]bool, len(c.Viewports))
	for i, v := range c.Viewports {
		if v.Name == "" {
			return fmt.Errorf("viewports[%d].name must not be empty", i)
		}
		if seen[v.Name] {
			return fmt.Errorf("duplicate viewport %q", v.Name)
		}
		seen[v.Name] = true
		if v.Width <= 0 || v.Height <= 0 {
			return fmt.Errorf("viewport %q must have positive width and height (got %dx%d)", v.Name, v.Width, v.Height)
		}
		if !isValidDeviceClass(v.DeviceClass) {
			return fmt.Errorf("viewport %q has unknown device_class %q (valid: desktop, tablet, mobile)", v.Name, v.DeviceClass)
		}
	}

	// 4. themes must be non-empty and unique
	if len(c.Themes) == 0 {
		return fmt.Errorf("at least one theme is required")
	}
	themes := make(map[string]bool, len(c.Themes))
	for _, t := range c.Themes {
		if t == "" {
			return fmt.Errorf("theme names must not be empty")
		}
		if themes[t] {
			return fmt.Errorf("duplicate theme %q", t)
		}
		themes[t] = true
	}

	// 5. weights keys must be valid categories, non-negative
	for k, w := range c.Weights {
		if !isValidCategory(k) {
			return fmt.Errorf("unknown category %q in weights", k)
		}
		if w < 0 {
			return fmt.Errorf("weights[%q] = %.2f (must be >= 0)", k, w)
		}
	}

	// 6. if all categories are specified, weights must sum to ~1.0
	if len(c.Weights) == len(ValidCategories) {
		sum := 0.0
		for _, w := range c.Weights {
			sum += w
		}
		if sum < 0.95 || sum > 1.05 {
			return fmt.Errorf("weights sum to %.2f (must be between 0.95 and 1.05)", sum)
		}
	}

	// 7. concurrency must be at least 1
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1 (got %d)", c.Concurrency)
	}

	// 8. timings
	if c.SettleDelayMs < 0 || c.ThemeSettleDelayMs < 0 {
		return fmt.Errorf("settle delays must be >= 0")
	}
	if c.OperationTimeoutMs <= 0 {
		return fmt.Errorf("operation_timeout_ms must be > 0 (got %d)", c.OperationTimeoutMs)
	}
	if c.RunTimeoutMs < 0 {
		return fmt.Errorf("run_timeout_ms must be >= 0 (got %d)", c.RunTimeoutMs)
	}
	if c.Browser.IdleWindowMs < 0 {
		return fmt.Errorf("browser.idle_window_ms must be >= 0 (got %d)", c.Browser.IdleWindowMs)
	}

	// 9. min_score must be 0-100
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("min_score = %d (must be between 0 and 100)", c.MinScore)
	}

	// 10. axe script is required for the accessibility probe
	if c.AxeScriptURL == "" {
		return fmt.Errorf("axe_script_url must not be empty")
	}

	return nil
}

func isValidCategory(name string) bool {
	for _, c := range ValidCategories {
		if c == name {
			return true
		}
	}
	return false
}
