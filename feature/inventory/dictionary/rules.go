package dictionary

import (
	"fmt"
	"regexp"

	"github.com/spf13/viper"
)

// RuleConfig is the declarative form of a dictionary rule.
type RuleConfig struct {
	// Pattern is a regular expression matched against the record name.
	Pattern string `mapstructure:"pattern"`
	// Ignore drops matching records.
	Ignore bool `mapstructure:"ignore"`
	// Name replaces the record name. "$1" style references are expanded.
	Name string `mapstructure:"name"`
	// Manufacturer replaces the record manufacturer.
	Manufacturer string `mapstructure:"manufacturer"`
	// Version replaces the record version (software only).
	Version string `mapstructure:"version"`
}

// RulesFile is the layout of a dictionary rules file.
type RulesFile struct {
	Manufacturers map[string]string `mapstructure:"manufacturers"`
	Software      []RuleConfig      `mapstructure:"software"`
	Printers      []RuleConfig      `mapstructure:"printers"`
}

// Outcome is the effect of a matched rule.
type Outcome struct {
	Ignore       bool
	Name         string
	Manufacturer string
	Version      string
}

type rule struct {
	re  *regexp.Regexp
	cfg RuleConfig
}

// RuleSet applies the first rule whose pattern matches a name.
type RuleSet struct {
	rules []rule
}

// NewRuleSet compiles rule configs in order.
func NewRuleSet(configs []RuleConfig) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]rule, 0, len(configs))}
	for i, cfg := range configs {
		re, err := regexp.Compile(cfg.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid rule %d pattern %q: %w", i, cfg.Pattern, err)
		}
		rs.rules = append(rs.rules, rule{re: re, cfg: cfg})
	}
	return rs, nil
}

// Apply returns the outcome of the first matching rule. Fields the rule leaves
// empty keep the input values. ok is false when no rule matched.
func (rs *RuleSet) Apply(name, manufacturer, version string) (out Outcome, ok bool) {
	out = Outcome{Name: name, Manufacturer: manufacturer, Version: version}
	if rs == nil {
		return out, false
	}
	for _, r := range rs.rules {
		m := r.re.FindStringSubmatchIndex(name)
		if m == nil {
			continue
		}
		if r.cfg.Ignore {
			out.Ignore = true
			return out, true
		}
		if r.cfg.Name != "" {
			out.Name = string(r.re.ExpandString(nil, r.cfg.Name, name, m))
		}
		if r.cfg.Manufacturer != "" {
			out.Manufacturer = r.cfg.Manufacturer
		}
		if r.cfg.Version != "" {
			out.Version = string(r.re.ExpandString(nil, r.cfg.Version, name, m))
		}
		return out, true
	}
	return out, false
}

// LoadRulesFile reads a YAML, JSON or TOML rules file.
func LoadRulesFile(path string) (*RulesFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	var rules RulesFile
	if err := v.Unmarshal(&rules); err != nil {
		return nil, fmt.Errorf("failed to decode rules file %s: %w", path, err)
	}
	return &rules, nil
}
