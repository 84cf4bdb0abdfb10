package scenario

import (
	"fmt"
	"strconv"
	"strings"
)

// Params holds the raw parameters of a component. Numbers decode as int
// from YAML and float64 from JSON; the accessors accept both.
type Params map[string]any

func (p Params) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("param %s: %v is not an integer", key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("param %s: expected number, got %T", key, v)
	}
}

func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("param %s: expected number, got %T", key, v)
	}
}

func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("param %s: expected bool, got %T", key, v)
	}
	return b, nil
}

// String returns the string parameter key with every "{n}" replaced by the
// one-based entity number, so a spec can name its entities e.g. "npc_{n}".
func (p Params) String(key string, def string, index int) (string, error) {
	v, ok := p[key]
	if !ok {
		v = def
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %s: expected string, got %T", key, v)
	}
	return strings.ReplaceAll(s, "{n}", strconv.Itoa(index+1)), nil
}
