// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/z5labs/dumbo/pkg/config/key"
)

// UnknownKeyerError
type UnknownKeyerError struct {
	key key.Keyer
}

// Error implements the error interface.
func (e UnknownKeyerError) Error() string {
	return fmt.Sprintf("config source tried setting config value with unknown key.Keyer: %s", e.key.Key())
}

// EmptyKeyChainError
type EmptyKeyChainError struct {
	Value any
}

// Error implements the error interface.
func (e EmptyKeyChainError) Error() string {
	return fmt.Sprintf("attempted to set value to an empty key chain: %v", e.Value)
}

type inMemoryStore map[string]any

// Set implements the Store interface. A value set on a key which
// already holds a value replaces it, including when the key is an
// intermediate node of a longer chain that previously held a leaf.
// Keys match case insensitively, keeping the casing of the key set first.
func (m inMemoryStore) Set(k key.Keyer, v any) error {
	return set(m, k, v)
}

func set(m map[string]any, k key.Keyer, v any) error {
	switch x := k.(type) {
	case key.Name:
		m[foldKey(m, string(x))] = v
	case key.Chain:
		return setKeyChain(m, x, v)
	default:
		return UnknownKeyerError{key: k}
	}
	return nil
}

func setKeyChain(m map[string]any, chain key.Chain, v any) error {
	if len(chain) == 0 {
		return EmptyKeyChainError{Value: v}
	}

	root := chain[0]
	if len(chain) == 1 {
		return set(m, root, v)
	}

	k := foldKey(m, root.Key())
	subM, ok := m[k].(map[string]any)
	if !ok {
		// later sources win, so a scalar or sequence sitting on the
		// path is replaced by a mapping
		subM = make(map[string]any)
		m[k] = subM
	}
	return set(subM, chain[1:], v)
}

// foldKey returns the key in m equal to k under case folding,
// or k itself when there is none.
func foldKey(m map[string]any, k string) string {
	if _, ok := m[k]; ok {
		return k
	}
	for _, existing := range slices.Sorted(maps.Keys(m)) {
		if strings.EqualFold(existing, k) {
			return existing
		}
	}
	return k
}
