// Package variant defines the runtime representation of algebraic data
// types: a VariantSpec describes a declared type, a Value is a tagged
// instance holding an ordered sequence of fields. Values are immutable
// after construction.
package variant

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ConstructorSpec describes one constructor of a variant type. TagID is
// assigned in declaration order, zero-based, and never changes.
type ConstructorSpec struct {
	Name  string
	Arity int
	TagID int

	typ *VariantSpec
}

// Type returns the VariantSpec that owns this constructor.
func (c *ConstructorSpec) Type() *VariantSpec { return c.typ }

// VariantSpec describes a declared algebraic data type. Specs are immutable
// once built.
type VariantSpec struct {
	TypeName     string
	Constructors []*ConstructorSpec
	UnitID       uuid.UUID // compilation unit that declared the type

	byName map[string]*ConstructorSpec
}

// Constructor looks up a constructor of this type by name.
func (s *VariantSpec) Constructor(name string) (*ConstructorSpec, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// ConstructorNames returns the constructor names in declaration order.
func (s *VariantSpec) ConstructorNames() []string {
	names := make([]string, len(s.Constructors))
	for i, c := range s.Constructors {
		names[i] = c.Name
	}
	return names
}

// CtorDef is the input to NewSpec: a constructor name and its field count.
type CtorDef struct {
	Name  string
	Arity int
}

// DuplicateConstructorError reports a constructor name declared twice
// within one variant type.
type DuplicateConstructorError struct {
	TypeName string
	Ctor     string
}

func (e *DuplicateConstructorError) Error() string {
	return fmt.Sprintf("duplicate constructor %s in data type %s", e.Ctor, e.TypeName)
}

// NewSpec builds an immutable VariantSpec, assigning tag ids in declaration
// order. Fails with DuplicateConstructorError on a repeated constructor name.
func NewSpec(typeName string, unitID uuid.UUID, ctors []CtorDef) (*VariantSpec, error) {
	s := &VariantSpec{
		TypeName: typeName,
		UnitID:   unitID,
		byName:   make(map[string]*ConstructorSpec, len(ctors)),
	}
	for i, def := range ctors {
		if _, ok := s.byName[def.Name]; ok {
			return nil, &DuplicateConstructorError{TypeName: typeName, Ctor: def.Name}
		}
		c := &ConstructorSpec{Name: def.Name, Arity: def.Arity, TagID: i, typ: s}
		s.Constructors = append(s.Constructors, c)
		s.byName[def.Name] = c
	}
	return s, nil
}

// ArityMismatchError reports a construction attempt with the wrong number
// of field values.
type ArityMismatchError struct {
	Ctor string
	Want int
	Got  int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("constructor %s expects %d arguments, got %d", e.Ctor, e.Want, e.Got)
}

// FieldIndexError reports a field projection beyond the constructor's arity.
type FieldIndexError struct {
	Ctor  string
	Arity int
	Index int
}

func (e *FieldIndexError) Error() string {
	return fmt.Sprintf("field index %d out of range for %s (arity %d)", e.Index, e.Ctor, e.Arity)
}

// Value is a runtime instance of a variant type: a tag plus an ordered
// sequence of field values. Field values are opaque to this package.
type Value struct {
	ctor   *ConstructorSpec
	fields []interface{}
}

// New constructs a Value. The field count must equal the constructor's
// declared arity; a mismatch is a checked runtime error, never silently
// truncated or padded.
func New(ctor *ConstructorSpec, fields ...interface{}) (*Value, error) {
	if len(fields) != ctor.Arity {
		return nil, &ArityMismatchError{Ctor: ctor.Name, Want: ctor.Arity, Got: len(fields)}
	}
	copied := make([]interface{}, len(fields))
	copy(copied, fields)
	return &Value{ctor: ctor, fields: copied}, nil
}

// TagID returns the constructor tag of the value.
func (v *Value) TagID() int { return v.ctor.TagID }

// Constructor returns the spec of the constructor that produced the value.
func (v *Value) Constructor() *ConstructorSpec { return v.ctor }

// Arity returns the number of fields.
func (v *Value) Arity() int { return len(v.fields) }

// Field projects the i-th field. Fails with FieldIndexError if i is outside
// the constructor's declared arity.
func (v *Value) Field(i int) (interface{}, error) {
	if i < 0 || i >= len(v.fields) {
		return nil, &FieldIndexError{Ctor: v.ctor.Name, Arity: v.ctor.Arity, Index: i}
	}
	return v.fields[i], nil
}

// Is reports whether the value was produced by the named constructor.
func (v *Value) Is(ctorName string) bool { return v.ctor.Name == ctorName }

// Equal compares two values structurally: same tag, pairwise-equal fields.
// Non-variant fields are compared with eq, so the host can plug in its own
// value equality.
func Equal(a, b *Value, eq func(x, y interface{}) bool) bool {
	if a.ctor != b.ctor {
		return false
	}
	for i := range a.fields {
		av, bv := a.fields[i], b.fields[i]
		if an, ok := av.(*Value); ok {
			bn, ok := bv.(*Value)
			if !ok || !Equal(an, bn, eq) {
				return false
			}
			continue
		}
		if !eq(av, bv) {
			return false
		}
	}
	return true
}

// String renders the value as Name(f1, f2), using the field's own Inspect
// method when it has one.
func (v *Value) String() string {
	if len(v.fields) == 0 {
		return v.ctor.Name
	}
	var sb strings.Builder
	sb.WriteString(v.ctor.Name)
	sb.WriteByte('(')
	for i, field := range v.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		if ins, ok := field.(interface{ Inspect() string }); ok {
			sb.WriteString(ins.Inspect())
		} else {
			fmt.Fprintf(&sb, "%v", field)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
