// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"maps"
	"slices"

	"github.com/z5labs/dumbo/pkg/config/key"
)

// Map is an ordinary map[string]any but implements the Source interface.
type Map map[string]any

// Apply implements the Source interface. It recursively walks the underlying
// map to find key value pairs to set on the given store.
func (m Map) Apply(store Store) error {
	return walkMap(m, store, nil)
}

func walkMap(m map[string]any, store Store, chain key.Chain) error {
	for k, v := range m {
		switch x := v.(type) {
		case map[string]any:
			if len(x) == 0 {
				// keep empty sections visible in the merged tree
				err := store.Set(chain.Append(key.Name(k)), map[string]any{})
				if err != nil {
					return err
				}
				continue
			}
			err := walkMap(x, store, chain.Append(key.Name(k)))
			if err != nil {
				return err
			}
		default:
			err := store.Set(chain.Append(key.Name(k)), x)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Walk calls f for every leaf of the tree in lexical key order.
// Sequences are leaves.
func (m Map) Walk(f func(key.Chain, any) bool) {
	walkSorted(m, nil, f)
}

func walkSorted(m map[string]any, chain key.Chain, f func(key.Chain, any) bool) bool {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		c := chain.Append(key.Name(k))
		sub, ok := m[k].(map[string]any)
		if ok && len(sub) > 0 {
			if !walkSorted(sub, c, f) {
				return false
			}
			continue
		}
		if !f(c, m[k]) {
			return false
		}
	}
	return true
}

func deepCopy(m map[string]any) Map {
	cp := make(Map, len(m))
	for k, v := range m {
		cp[k] = copyValue(v)
	}
	return cp
}

func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return map[string]any(deepCopy(x))
	case []any:
		s := make([]any, len(x))
		for i := range x {
			s[i] = copyValue(x[i])
		}
		return s
	default:
		return v
	}
}
