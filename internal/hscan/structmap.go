package hscan

import (
	"reflect"
	"strings"
	"sync"
)

type structField struct {
	index int
	fn    decoderFunc
}

// structFields maps a tag to its field.
type structFields struct {
	m map[string]*structField
}

func (s *structFields) get(tag string) (*structField, bool) {
	f, ok := s.m[tag]
	return f, ok
}

type structMap struct {
	m sync.Map
}

func newStructMap() *structMap {
	return new(structMap)
}

func (s *structMap) get(t reflect.Type) *structFields {
	if v, ok := s.m.Load(t); ok {
		return v.(*structFields)
	}

	fields := getStructFields(t, "redis")
	s.m.Store(t, fields)
	return fields
}

func getStructFields(t reflect.Type, fieldTag string) *structFields {
	out := &structFields{m: make(map[string]*structField)}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		tag, _, _ := strings.Cut(f.Tag.Get(fieldTag), ",")
		if tag == "" || tag == "-" {
			continue
		}

		var fn decoderFunc
		if k := f.Type.Kind(); int(k) < len(decoders) {
			fn = decoders[k]
		}
		out.m[tag] = &structField{index: i, fn: fn}
	}

	return out
}
