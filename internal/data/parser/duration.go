package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts either a Go duration string ("20s", "1m30s") or a plain
// number of milliseconds
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*d = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid duration %s: %w", s, err)
		}
		return d.parseString(unquoted)
	}
	return d.parseMillis(s)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		return d.parseMillis(node.Value)
	case "!!null":
		*d = 0
		return nil
	default:
		return d.parseString(node.Value)
	}
}

func (d *Duration) parseString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*d = 0
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return d.parseMillis(s)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if v < 0 {
		return fmt.Errorf("invalid duration %q: negative", s)
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) parseMillis(s string) error {
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %s: %w", s, err)
	}
	if ms < 0 {
		return fmt.Errorf("invalid duration %s: negative", s)
	}
	*d = Duration(time.Duration(ms * float64(time.Millisecond)))
	return nil
}
