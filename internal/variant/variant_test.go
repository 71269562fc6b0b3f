package variant_test

import (
	"testing"

	"github.com/funvibe/funcase/internal/variant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func listSpec(t *testing.T) *variant.VariantSpec {
	t.Helper()
	spec, err := variant.NewSpec("List", uuid.New(), []variant.CtorDef{
		{Name: "Nil", Arity: 0},
		{Name: "Cons", Arity: 2},
	})
	require.NoError(t, err)
	return spec
}

func TestNewSpecAssignsTagsInDeclarationOrder(t *testing.T) {
	spec := listSpec(t)

	require.Equal(t, []string{"Nil", "Cons"}, spec.ConstructorNames())

	nilCtor, ok := spec.Constructor("Nil")
	require.True(t, ok)
	require.Equal(t, 0, nilCtor.TagID)
	require.Equal(t, 0, nilCtor.Arity)

	cons, ok := spec.Constructor("Cons")
	require.True(t, ok)
	require.Equal(t, 1, cons.TagID)
	require.Equal(t, 2, cons.Arity)
	require.Same(t, spec, cons.Type())
}

func TestNewSpecRejectsDuplicateConstructor(t *testing.T) {
	_, err := variant.NewSpec("Shape", uuid.New(), []variant.CtorDef{
		{Name: "Circle", Arity: 1},
		{Name: "Circle", Arity: 2},
	})
	require.Error(t, err)
	var dup *variant.DuplicateConstructorError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "Circle", dup.Ctor)
}

func TestValueConstructionChecksArity(t *testing.T) {
	spec := listSpec(t)
	cons, _ := spec.Constructor("Cons")

	_, err := variant.New(cons, 1)
	var mismatch *variant.ArityMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, 2, mismatch.Want)
	require.Equal(t, 1, mismatch.Got)

	v, err := variant.New(cons, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, v.Arity())
	require.True(t, v.Is("Cons"))
	require.False(t, v.Is("Nil"))
}

func TestFieldProjectionIsRangeChecked(t *testing.T) {
	spec := listSpec(t)
	cons, _ := spec.Constructor("Cons")
	v, err := variant.New(cons, "head", "tail")
	require.NoError(t, err)

	head, err := v.Field(0)
	require.NoError(t, err)
	require.Equal(t, "head", head)

	_, err = v.Field(2)
	var fieldErr *variant.FieldIndexError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, 2, fieldErr.Index)

	_, err = v.Field(-1)
	require.Error(t, err)
}

func TestEqualComparesTagAndFieldsStructurally(t *testing.T) {
	spec := listSpec(t)
	nilCtor, _ := spec.Constructor("Nil")
	cons, _ := spec.Constructor("Cons")

	empty, _ := variant.New(nilCtor)
	empty2, _ := variant.New(nilCtor)
	one, _ := variant.New(cons, 1, empty)
	oneAgain, _ := variant.New(cons, 1, empty2)
	two, _ := variant.New(cons, 2, empty)

	eq := func(x, y interface{}) bool { return x == y }
	require.True(t, variant.Equal(empty, empty2, eq))
	require.True(t, variant.Equal(one, oneAgain, eq))
	require.False(t, variant.Equal(one, two, eq))
	require.False(t, variant.Equal(one, empty, eq))
}

func TestStringRendersNestedValues(t *testing.T) {
	spec := listSpec(t)
	nilCtor, _ := spec.Constructor("Nil")
	cons, _ := spec.Constructor("Cons")

	empty, _ := variant.New(nilCtor)
	one, _ := variant.New(cons, 1, empty)

	require.Equal(t, "Nil", empty.String())
	require.Equal(t, "Cons(1, Nil)", one.String())
}

func TestRegistryRejectsClashesAndStaysUnchanged(t *testing.T) {
	reg := variant.NewRegistry()
	require.NoError(t, reg.Register(listSpec(t)))

	// Same type name.
	again := listSpec(t)
	require.Error(t, reg.Register(again))

	// Different type name, clashing constructor name.
	tree, err := variant.NewSpec("Tree", uuid.New(), []variant.CtorDef{
		{Name: "Leaf", Arity: 0},
		{Name: "Nil", Arity: 0},
	})
	require.NoError(t, err)
	require.Error(t, reg.Register(tree))

	// The failed registration must not leak partial entries.
	_, ok := reg.LookupConstructor("Leaf")
	require.False(t, ok)
	_, ok = reg.LookupType("Tree")
	require.False(t, ok)

	cons, ok := reg.LookupConstructor("Cons")
	require.True(t, ok)
	require.Equal(t, "List", cons.Type().TypeName)
}
