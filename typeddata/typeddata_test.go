package typeddata

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaDataType(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		want   string
	}{
		{name: "scalar type", schema: &ScalarSchema{Type: TypeString}, want: "string"},
		{name: "scalar named", schema: &ScalarSchema{Type: TypeString, Name: "field_item:string"}, want: "field_item:string"},
		{name: "scalar untyped", schema: &ScalarSchema{}, want: "any"},
		{name: "list default", schema: &ListSchema{}, want: "list"},
		{name: "list named", schema: &ListSchema{Name: "field_item_list"}, want: "field_item_list"},
		{name: "reference default", schema: NewReferenceSchema(nil), want: "reference"},
		{name: "complex default", schema: &ComplexSchema{}, want: "map"},
		{name: "complex named", schema: &ComplexSchema{Name: "entity:node:article"}, want: "entity:node:article"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schema.DataType())
		})
	}
}

func TestComplexSchema(t *testing.T) {
	s := &ComplexSchema{Properties: map[string]Schema{
		"title": &ScalarSchema{Type: TypeString},
		"uid":   &ListSchema{},
		"nil":   nil,
	}}

	p, ok := s.Property("title")
	require.True(t, ok)
	assert.Equal(t, "string", p.DataType())

	_, ok = s.Property("missing")
	assert.False(t, ok)

	_, ok = s.Property("nil")
	assert.False(t, ok, "nil property schemas count as missing")

	assert.Equal(t, []string{"nil", "title", "uid"}, s.PropertyNames())
}

func TestReferenceSchema_Lazy(t *testing.T) {
	calls := 0
	user := &ComplexSchema{Name: "user"}
	rs := NewLazyReferenceSchema("user", func() Schema {
		calls++
		return user
	})

	assert.Equal(t, "user", rs.TargetType)
	assert.Same(t, user, rs.Target())
	assert.Same(t, user, rs.Target())
	assert.Equal(t, 1, calls, "target function runs once")

	eager := NewReferenceSchema(user)
	assert.Equal(t, "user", eager.TargetType)
	assert.Same(t, user, eager.Target())
}

func TestList(t *testing.T) {
	a := NewScalar(nil, "a")
	b := NewScalar(nil, "b")
	l := NewList(nil, a, nil, b)

	assert.Equal(t, 2, l.Len())
	assert.False(t, l.IsEmpty())

	got, ok := l.Get(1)
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = l.Get(2)
	assert.False(t, ok)
	_, ok = l.Get(-1)
	assert.False(t, ok)

	items := l.Items()
	items[0] = b
	first, _ := l.Get(0)
	assert.Same(t, a, first, "Items must return a copy")

	assert.True(t, NewList(nil).IsEmpty())
}

func TestComplex(t *testing.T) {
	title := NewScalar(nil, "node0")
	c := NewComplex(nil, map[string]Node{"title": title, "body": nil})

	got, ok := c.Get("title")
	require.True(t, ok)
	assert.Same(t, title, got)

	_, ok = c.Get("body")
	assert.False(t, ok)
	assert.Equal(t, []string{"title"}, c.Names())
}

func TestReference(t *testing.T) {
	t.Run("eager target", func(t *testing.T) {
		target := NewComplex(nil, nil)
		r := NewReference(nil, target)
		got, err := r.Target()
		require.NoError(t, err)
		assert.Same(t, target, got)
	})

	t.Run("unset", func(t *testing.T) {
		got, err := NewReference(nil, nil).Target()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("lazy loader error is returned unchanged", func(t *testing.T) {
		boom := errors.New("backing store down")
		r := NewLazyReference(nil, "7", func() (Node, error) { return nil, boom })
		assert.Equal(t, "7", r.Key())
		_, err := r.Target()
		assert.Same(t, boom, err)
	})
}

func TestValue(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		want    any
		present bool
	}{
		{name: "string", node: NewScalar(nil, "user0"), want: "user0", present: true},
		{name: "zero", node: NewScalar(nil, 0), want: 0, present: true},
		{name: "empty string", node: NewScalar(nil, ""), want: "", present: true},
		{name: "false", node: NewScalar(nil, false), want: false, present: true},
		{name: "nil value", node: NewScalar(nil, nil), want: nil, present: true},
		{name: "nil node", node: nil, want: nil, present: false},
		{name: "list", node: NewList(nil), want: nil, present: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Value(tt.node)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExport(t *testing.T) {
	user := NewComplex(nil, map[string]Node{
		"name": NewList(nil, NewComplex(nil, map[string]Node{"value": NewScalar(nil, "user0")})),
	})
	article := NewComplex(nil, map[string]Node{
		"title": NewScalar(nil, "node0"),
		"uid": NewList(nil, NewComplex(nil, map[string]Node{
			"target_id": NewScalar(nil, 1),
			"entity":    NewReference(nil, user),
		})),
		"unset": NewReference(nil, nil),
	})

	got, err := Export(article)
	require.NoError(t, err)

	want := map[string]any{
		"title": "node0",
		"uid": []any{map[string]any{
			"target_id": 1,
			"entity":    map[string]any{"name": []any{map[string]any{"value": "user0"}}},
		}},
		"unset": nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Export() mismatch (-want +got):\n%s", diff)
	}

	shallow, err := ExportDepth(article, 0)
	require.NoError(t, err)
	uid := shallow.(map[string]any)["uid"].([]any)[0].(map[string]any)
	assert.Nil(t, uid["entity"], "references beyond the depth export as nil")

	boom := errors.New("load failed")
	_, err = Export(NewLazyReference(nil, "1", func() (Node, error) { return nil, boom }))
	assert.ErrorIs(t, err, boom)
}

func TestDataType(t *testing.T) {
	assert.Equal(t, "unknown", DataType(nil))
	assert.Equal(t, "unknown", DataType(NewScalar(nil, 1)))
	assert.Equal(t, "entity:user", DataType(NewComplex(&ComplexSchema{Name: "entity:user"}, nil)))
}
