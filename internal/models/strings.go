package models

import (
	"fmt"
	"reflect"
	"strings"
)

// StringHelper builds debug renderings of the form Type{id=1, name=value}.
//
// Embedding types extend the rendering started by [ToStringHelper]:
//
//	func (u *User) String() string {
//		return ToStringHelper(u).Add("login", u.Login).String()
//	}
type StringHelper struct {
	name     string
	fields   []field
	omitNils bool
}

type field struct {
	name  string
	value any
}

// ToStringHelper starts a rendering of e named after its concrete type and anchored on its id.
func ToStringHelper(e Entity) *StringHelper {
	helper := &StringHelper{name: typeName(e)}
	if isNil(e) {
		return helper.Add("id", nil)
	}
	return helper.Add("id", e.Base().ID)
}

// Add appends a name=value pair.
func (h *StringHelper) Add(name string, value any) *StringHelper {
	h.fields = append(h.fields, field{name: name, value: value})
	return h
}

// OmitNilValues skips nil fields when rendering. The id is always kept.
func (h *StringHelper) OmitNilValues() *StringHelper {
	h.omitNils = true
	return h
}

func (h *StringHelper) String() string {
	var b strings.Builder
	b.WriteString(h.name)
	b.WriteByte('{')

	sep := ""
	for _, f := range h.fields {
		value, ok := deref(f.value)
		if !ok && h.omitNils && f.name != "id" {
			continue
		}

		b.WriteString(sep)
		b.WriteString(f.name)
		b.WriteByte('=')
		if ok {
			fmt.Fprint(&b, value)
		} else {
			b.WriteString("<nil>")
		}
		sep = ", "
	}

	b.WriteByte('}')
	return b.String()
}

// deref unwraps pointers; the boolean is false for nil values.
func deref(value any) (any, bool) {
	if value == nil {
		return nil, false
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		if _, ok := v.Interface().(fmt.Stringer); ok {
			return v.Interface(), true
		}
		v = v.Elem()
	}
	return v.Interface(), true
}

func typeName(e Entity) string {
	t := reflect.TypeOf(e)
	if t == nil {
		return "Entity"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
