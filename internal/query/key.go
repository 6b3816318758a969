// Package query is the keyed cache that sits between page handlers and the
// backend client. Each query is identified by a Key, fetched at most once
// per key across concurrent callers, and kept fresh for a per-resource TTL.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

const sep = "|"

// Key identifies one query: a resource name followed by the parameters
// that select the data. Two keys are equal iff their String() is equal.
type Key struct {
	resource string
	parts    []string
}

// NewKey builds a key from a resource and primitive parameters
// (strings, ints and bools). Other values are formatted with %v.
func NewKey(resource string, parts ...any) Key {
	k := Key{resource: resource, parts: make([]string, 0, len(parts))}
	for _, p := range parts {
		k.parts = append(k.parts, encodePart(p))
	}
	return k
}

func encodePart(p any) string {
	var s string
	switch v := p.(type) {
	case string:
		s = v
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	default:
		s = fmt.Sprint(v)
	}
	// Escape the separator so ("a|b") and ("a", "b") never collide.
	s = strings.ReplaceAll(s, "%", "%25")
	return strings.ReplaceAll(s, sep, "%7C")
}

// Resource returns the first element of the key.
func (k Key) Resource() string { return k.resource }

// String returns the stable encoding used as the store key.
func (k Key) String() string {
	if len(k.parts) == 0 {
		return k.resource
	}
	return k.resource + sep + strings.Join(k.parts, sep)
}

// Equal reports whether two keys select the same data.
func (k Key) Equal(other Key) bool { return k.String() == other.String() }

// Prefix returns the invalidation prefix covering every key of resource
// whose leading parameters equal parts.
func Prefix(resource string, parts ...any) string {
	return NewKey(resource, parts...).String() + sep
}
