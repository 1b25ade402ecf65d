// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: document/normalize.go
// Summary: Maps YAML-decoded values onto the JSON value model and back.

package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/framegrace/nestedjson/tree"
)

// normalize converts YAML-specific shapes: mappings with non-string keys
// get their keys formatted with %v, integers become json.Number like the
// ones decoded from JSON and timestamps become RFC 3339 strings.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(val))
	case int64:
		return json.Number(strconv.FormatInt(val, 10))
	case uint64:
		return json.Number(strconv.FormatUint(val, 10))
	case float32:
		return float64(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return val
	}
}

// yamlValue prepares a tree for the YAML encoder, which would otherwise
// quote json.Number as a string. Integers are written as integers and
// everything else as a float.
func yamlValue(v interface{}) interface{} {
	switch val := v.(type) {
	case tree.Tree:
		return yamlMap(val)
	case map[string]interface{}:
		return yamlMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = yamlValue(item)
		}
		return out
	case json.Number:
		if n, err := strconv.ParseInt(string(val), 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(string(val), 10, 64); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return string(val)
	default:
		return val
	}
}

func yamlMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, item := range m {
		out[k] = yamlValue(item)
	}
	return out
}
