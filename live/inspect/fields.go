package inspect

import (
	"reflect"
	"strings"
	"sync"
)

// accessor describes one inspectable attribute of an entity: a zero-arg
// getter method, and optionally the matching Set method that makes the
// attribute editable. Entities keep their fields behind mutators so writes
// mark them dirty; the inspector goes through the same doors.
type accessor struct {
	Name string
	Kind reflect.Kind
	get  int // getter method index
	set  int // setter method index, -1 when read-only
}

// Editable reports whether the inspector can write this attribute back.
func (a accessor) Editable() bool {
	switch a.Kind {
	case reflect.Int, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return a.set >= 0
	}
	return false
}

// Value reads the attribute from recv.
func (a accessor) Value(recv reflect.Value) reflect.Value {
	return recv.Method(a.get).Call(nil)[0]
}

// Assign writes v back through the setter.
func (a accessor) Assign(recv reflect.Value, v reflect.Value) {
	recv.Method(a.set).Call([]reflect.Value{v})
}

type accessorCache struct {
	mu    sync.RWMutex
	types map[reflect.Type][]accessor
}

func newAccessorCache() *accessorCache {
	return &accessorCache{types: make(map[reflect.Type][]accessor)}
}

// accessors returns the attribute list for an entity type, scanning its
// method set once and caching the result.
func (c *accessorCache) accessors(t reflect.Type) []accessor {
	c.mu.RLock()
	cached, ok := c.types[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.types[t]; ok {
		return cached
	}

	accs := scanMethods(t)
	c.types[t] = accs
	return accs
}

// scanMethods pairs every zero-arg single-return method with a Set method
// of the same name and value type, skipping the frame-loop verbs.
func scanMethods(t reflect.Type) []accessor {
	setters := make(map[string]int)
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !strings.HasPrefix(m.Name, "Set") || len(m.Name) == 3 {
			continue
		}
		if m.Type.NumIn() == 2 && m.Type.NumOut() == 0 {
			setters[m.Name[3:]] = i
		}
	}

	var accs []accessor
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
			continue
		}
		// Cached is the raster itself, not an attribute worth printing.
		if m.Name == "Cached" {
			continue
		}

		out := m.Type.Out(0)
		set := -1
		if si, ok := setters[m.Name]; ok && t.Method(si).Type.In(1) == out {
			set = si
		}
		accs = append(accs, accessor{
			Name: m.Name,
			Kind: out.Kind(),
			get:  i,
			set:  set,
		})
	}
	return accs
}
