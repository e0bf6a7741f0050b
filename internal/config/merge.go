package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/alloycomp/internal/composition"
)

// Top-level YAML config key names.
const (
	keyElements = "elements"
	keyOutput   = "output"
	keyLogging  = "logging"
	keyBatch    = "batch"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config fields.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyElements: true,
	keyOutput:   true,
	keyLogging:  true,
	keyBatch:    true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. The elements section replaces the whole mass table; the other
// sections are decoded over their current values, so fields the file omits
// keep their defaults. Unknown top-level keys are an error.
func ShallowMergeYAML(target *Config, path string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("config %s: top level must be a mapping", path)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, section := root.Content[i].Value, root.Content[i+1]
		if !knownTopLevelKeys[key] {
			return fmt.Errorf("config %s line %d: unknown section %q", path, root.Content[i].Line, key)
		}
		if err = decodeSection(target, key, section); err != nil {
			return fmt.Errorf("config %s: section %q: %w", path, key, err)
		}
	}

	return nil
}

// decodeSection decodes one top-level section onto the matching field of target.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyElements:
		var t composition.MassTable
		if err := node.Decode(&t); err != nil {
			return err
		}
		target.Elements = &t
		return nil
	case keyOutput:
		v := target.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
		return nil
	case keyLogging:
		v := target.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
		return nil
	case keyBatch:
		v := target.Batch
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Batch = v
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
