package config

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

// OptionType represents the expected type of a configuration option value.
type OptionType string

const (
	// TypeString is a plain string value (the default for all config values).
	TypeString OptionType = "string"
	// TypeBool is a boolean value (true/false/yes/no/1/0/on/off).
	TypeBool OptionType = "bool"
	// TypeInt is an integer value.
	TypeInt OptionType = "int"
	// TypeEnum is one of the option's Values.
	TypeEnum OptionType = "enum"
)

// ConfigOption declares a single configuration option with its type, default,
// documentation, and environment variable override.
type ConfigOption struct {
	// Key is the option name as it appears in the config file (kebab-case).
	Key string
	// Type is the expected value type for validation.
	Type OptionType
	// Values lists the accepted values of a TypeEnum option.
	Values []string
	// Default is the default value as a string, or "" for no default.
	Default string
	// Description is a human-readable description of the option.
	Description string
	// Section is "" for global options, or a command/section name.
	Section string
	// EnvVar is the environment variable that overrides this option, or "".
	EnvVar string
}

// ConfigSchema declares the expected configuration options for the application.
// It is used for validation, documentation, and env var mapping.
type ConfigSchema struct {
	options []*ConfigOption
	// byKey indexes global options by key for fast lookup.
	byKey map[string]*ConfigOption
	// bySection indexes command/section options by section then key.
	bySection map[string]map[string]*ConfigOption
	// sections that may appear in a config file, even without options of their own.
	sections map[string]bool
}

// NewSchema creates a new empty ConfigSchema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{
		byKey:     make(map[string]*ConfigOption),
		bySection: make(map[string]map[string]*ConfigOption),
		sections:  make(map[string]bool),
	}
}

// Register adds a ConfigOption to the schema. Duplicate keys within the same
// section are silently overwritten (last registration wins).
func (s *ConfigSchema) Register(opt ConfigOption) {
	ref := new(ConfigOption)
	*ref = opt
	s.options = append(s.options, ref)
	if opt.Section == "" {
		s.byKey[opt.Key] = ref
	} else {
		if s.bySection[opt.Section] == nil {
			s.bySection[opt.Section] = make(map[string]*ConfigOption)
		}
		s.bySection[opt.Section][opt.Key] = ref
		s.sections[opt.Section] = true
	}
}

// RegisterAll adds multiple ConfigOptions to the schema.
func (s *ConfigSchema) RegisterAll(opts []ConfigOption) {
	for _, opt := range opts {
		s.Register(opt)
	}
}

// RegisterSection declares a section that only carries global keys.
func (s *ConfigSchema) RegisterSection(name string) {
	s.sections[name] = true
}

// Lookup returns the ConfigOption for a key in a given section ("" for global).
// Returns nil if the key is not registered.
func (s *ConfigSchema) Lookup(section, key string) *ConfigOption {
	if section == "" {
		return s.byKey[key]
	}
	if sec, ok := s.bySection[section]; ok {
		return sec[key]
	}
	return nil
}

// lookupWithFallback finds a section option, falling back to the global one.
func (s *ConfigSchema) lookupWithFallback(section, key string) *ConfigOption {
	if opt := s.Lookup(section, key); opt != nil {
		return opt
	}
	return s.byKey[key]
}

// IsKnown returns true if the key is registered in the given section.
// For command sections, global keys are also considered known (they can
// appear in command sections and override the global value).
func (s *ConfigSchema) IsKnown(section, key string) bool {
	return s.lookupWithFallback(section, key) != nil
}

// GlobalOptions returns all registered global options (Section == "").
func (s *ConfigSchema) GlobalOptions() []ConfigOption {
	return s.SectionOptions("")
}

// SectionOptions returns all registered options for a specific section.
func (s *ConfigSchema) SectionOptions(section string) []ConfigOption {
	var out []ConfigOption
	for _, o := range s.options {
		if o.Section == section {
			out = append(out, *o)
		}
	}
	return out
}

// Sections returns a sorted list of all registered non-empty section names.
func (s *ConfigSchema) Sections() []string {
	out := make([]string, 0, len(s.sections))
	for sec := range s.sections {
		out = append(out, sec)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the effective value for key as seen by command, checking,
// in order: (1) the environment variable declared in the schema for this key,
// (2) the command section, (3) the global config value, (4) the schema
// default. Pass "" as command to skip the section lookup.
func (s *ConfigSchema) Resolve(c *Config, command, key string) string {
	opt := s.lookupWithFallback(command, key)
	if opt != nil && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if c != nil {
		if v, ok := c.GetCommandOption(command, key); ok {
			return v
		}
	}
	if opt != nil {
		return opt.Default
	}
	return ""
}

// ValidateConfig checks a loaded Config against the schema and returns a list
// of human-readable issues (empty if the config is valid). Validation includes:
//   - Unknown global options (not in schema)
//   - Unknown sections and unknown command options
//   - Type mismatches for options with declared types
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string

	for key, value := range c.Global {
		opt := s.Lookup("", key)
		if opt == nil {
			issues = append(issues, fmt.Sprintf("unknown global option: %q (value: %q)", key, value))
			continue
		}
		if err := opt.validate(value); err != nil {
			issues = append(issues, fmt.Sprintf("global option %q: %v", key, err))
		}
	}

	for section, opts := range c.Commands {
		if !s.sections[section] {
			issues = append(issues, fmt.Sprintf("unknown section: [%s]", section))
			continue
		}
		for key, value := range opts {
			opt := s.lookupWithFallback(section, key)
			if opt == nil {
				issues = append(issues, fmt.Sprintf("unknown option for command %q: %q (value: %q)", section, key, value))
				continue
			}
			if err := opt.validate(value); err != nil {
				issues = append(issues, fmt.Sprintf("option %q in [%s]: %v", key, section, err))
			}
		}
	}

	sort.Strings(issues)
	return issues
}

// ValidateOption checks a single value as it would appear in section ("" for
// global).
func (s *ConfigSchema) ValidateOption(section, key, value string) error {
	if section != "" && !s.sections[section] {
		return fmt.Errorf("unknown section: [%s]", section)
	}
	opt := s.lookupWithFallback(section, key)
	if opt == nil {
		return fmt.Errorf("unknown option: %q", key)
	}
	if err := opt.validate(value); err != nil {
		return fmt.Errorf("option %q: %w", key, err)
	}
	return nil
}

// validate checks that a string value matches the option's type.
func (o *ConfigOption) validate(value string) error {
	switch o.Type {
	case TypeString, "":
		return nil
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("expected int, got %q", value)
		}
	case TypeEnum:
		if !slices.Contains(o.Values, strings.ToLower(value)) {
			return fmt.Errorf("expected one of %s, got %q", strings.Join(o.Values, ", "), value)
		}
	default:
		return fmt.Errorf("unknown option type %q", o.Type)
	}
	return nil
}

// FormatHelp returns a formatted, human-readable reference of all registered
// options in the schema, grouped by section.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder

	globals := s.GlobalOptions()
	if len(globals) > 0 {
		b.WriteString("Global Options:\n")
		for _, o := range globals {
			writeOptionHelp(&b, o)
		}
	}

	for _, sec := range s.Sections() {
		opts := s.SectionOptions(sec)
		if len(opts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n[%s] Options:\n", sec)
		for _, o := range opts {
			writeOptionHelp(&b, o)
		}
	}

	return b.String()
}

func writeOptionHelp(b *strings.Builder, o ConfigOption) {
	fmt.Fprintf(b, "  %-16s %s", o.Key, o.Description)
	parts := make([]string, 0, 3)
	switch o.Type {
	case "", TypeString:
	case TypeEnum:
		parts = append(parts, "one of: "+strings.Join(o.Values, "|"))
	default:
		parts = append(parts, fmt.Sprintf("type: %s", o.Type))
	}
	if o.Default != "" {
		parts = append(parts, fmt.Sprintf("default: %s", o.Default))
	}
	if o.EnvVar != "" {
		parts = append(parts, fmt.Sprintf("env: %s", o.EnvVar))
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
}

// Section names accepted in a config file, one per subcommand.
const (
	SectionView   = "view"
	SectionRender = "render"
	SectionScript = "script"
)

// DefaultSchema returns the schema declaring all known termscroll
// configuration options.
func DefaultSchema() *ConfigSchema {
	s := NewSchema()
	s.RegisterAll(defaultGlobalOptions())
	s.RegisterAll(defaultCommandOptions())
	s.RegisterSection(SectionView)
	s.RegisterSection(SectionScript)
	return s
}

func defaultGlobalOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "glyphs", Type: TypeEnum, Values: scrollbar.GlyphSetNames(), Default: "minimal", Description: "Glyph set used to draw the thumb"},
		{Key: "arrows", Type: TypeEnum, Values: []string{"none", "start", "end", "both"}, Default: "none", Description: "Arrow endcaps to draw"},
		{Key: "track-click", Type: TypeEnum, Values: []string{"page", "jump"}, Default: "page", Description: "Effect of clicking the track"},
		{Key: "scroll-step", Type: TypeInt, Default: "1", Description: "Lines moved per wheel notch or arrow click"},
		{Key: "orientation", Type: TypeEnum, Values: []string{"vertical", "horizontal"}, Default: "vertical", Description: "Default scrollbar orientation"},
		{Key: "thumb-color", Type: TypeString, Default: "57", Description: "Thumb foreground color (ANSI index or #hex)"},
		{Key: "track-color", Type: TypeString, Default: "240", Description: "Track foreground color (ANSI index or #hex)"},
		{Key: "arrow-color", Type: TypeString, Default: "245", Description: "Arrow foreground color (ANSI index or #hex)"},
		{Key: "smooth", Type: TypeBool, Default: "false", Description: "Animate scrolling with a spring"},
		{Key: "log-level", Type: TypeEnum, Values: []string{"debug", "info", "warn", "error"}, Default: "info", Description: "Log level", EnvVar: "TERMSCROLL_LOG_LEVEL"},
		{Key: "log-file", Type: TypeString, Default: "", Description: "Log file path (logging is disabled when empty)", EnvVar: "TERMSCROLL_LOG_FILE"},
		{Key: "log-max-size-mb", Type: TypeInt, Default: "10", Description: "Log file size that triggers rotation"},
		{Key: "log-max-files", Type: TypeInt, Default: "5", Description: "Rotated log files to keep"},
	}
}

func defaultCommandOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "cells", Section: SectionRender, Type: TypeInt, Default: "10", Description: "Scrollbar length in cells"},
		{Key: "content", Section: SectionRender, Type: TypeInt, Default: "100", Description: "Content length"},
		{Key: "viewport", Section: SectionRender, Type: TypeInt, Default: "10", Description: "Viewport length"},
	}
}
