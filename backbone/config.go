package backbone

import (
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// weightLiteral matches a "Header(weight)" entry from the configuration
// file's group lists, e.g. "Customer_Name(6)" or "Zip(2.5)" (spec.md
// §4.4, §6).
var weightLiteral = regexp.MustCompile(`^(\S+)\((\d+(\.\d+)?)\)$`)

// parseWeightedHeader splits a "Header(weight)" entry into its header
// name and raw weight.
func parseWeightedHeader(entry string) (header string, weight float64, err error) {
	m := weightLiteral.FindStringSubmatch(entry)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedWeight, entry)
	}

	w, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedWeight, entry)
	}

	return m[1], w, nil
}

// stringOrSlice decodes a YAML scalar or sequence of strings into a
// slice, so a links map can write either "GroupA: GroupB" or
// "GroupA: [GroupB, GroupC]" (spec.md §6).
type stringOrSlice []string

func (s *stringOrSlice) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var str string
		if err := value.Decode(&str); err != nil {
			return err
		}

		*s = []string{str}
		return nil
	}

	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}

	*s = list
	return nil
}

// RawConfig is the on-disk shape of the backbone section of the
// configuration file (spec.md §6).
type RawConfig struct {
	ReferenceGroups map[string][]string      `yaml:"reference_groups"`
	TargetGroups    map[string][]string      `yaml:"target_groups"`
	RefToTgt        map[string]stringOrSlice `yaml:"ref_to_tgt"`
	TgtToRef        map[string]stringOrSlice `yaml:"tgt_to_ref"`
	ReferenceKeyCol string                   `yaml:"reference_key_col"`
	TargetKeyCol    string                   `yaml:"target_key_col"`
}

// ParseConfig decodes a backbone configuration document.
func ParseConfig(data []byte) (*RawConfig, error) {
	var cfg RawConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ErrConfig{Section: "backbone", cause: err}
	}

	if len(cfg.ReferenceGroups) == 0 {
		return nil, &ErrConfig{Section: "reference_groups", cause: ErrEmptyHeaders}
	}

	if len(cfg.TargetGroups) == 0 {
		return nil, &ErrConfig{Section: "target_groups", cause: ErrEmptyHeaders}
	}

	if cfg.ReferenceKeyCol == "" {
		return nil, &ErrConfig{Section: "reference_key_col"}
	}

	return &cfg, nil
}

// Build turns a parsed RawConfig into a Backbone, constructing every
// GroupBlock with softmax-normalized weights parsed from its
// "Header(weight)" entries.
func (c *RawConfig) Build() (*Backbone, error) {
	refGroups, err := buildGroups(c.ReferenceGroups)
	if err != nil {
		return nil, err
	}

	tgtGroups, err := buildGroups(c.TargetGroups)
	if err != nil {
		return nil, err
	}

	refToTgt := toStringSliceMap(c.RefToTgt)
	tgtToRef := toStringSliceMap(c.TgtToRef)

	return newBackbone(refGroups, tgtGroups, refToTgt, tgtToRef, c.ReferenceKeyCol, c.TargetKeyCol)
}

// buildGroups parses every "name: [Header(weight), ...]" entry into a
// GroupBlock.
func buildGroups(raw map[string][]string) (map[string]*GroupBlock, error) {
	groups := make(map[string]*GroupBlock, len(raw))

	for name, entries := range raw {
		headers := make([]string, 0, len(entries))
		weights := make([]float64, 0, len(entries))

		for _, entry := range entries {
			h, w, err := parseWeightedHeader(entry)
			if err != nil {
				return nil, &ErrConfig{Section: name, cause: err}
			}

			headers = append(headers, h)
			weights = append(weights, w)
		}

		g, err := NewGroupBlock(name, headers, weights)
		if err != nil {
			return nil, &ErrConfig{Section: name, cause: err}
		}

		groups[name] = g
	}

	return groups, nil
}

func toStringSliceMap(raw map[string]stringOrSlice) map[string][]string {
	out := make(map[string][]string, len(raw))
	for k, v := range raw {
		out[k] = []string(v)
	}

	return out
}
