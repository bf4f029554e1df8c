package resolver

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/internal/testutil"
	"github.com/erraggy/dataresolver/logging"
	"github.com/erraggy/dataresolver/typeddata"
)

// values extracts raw scalar values, failing the test on non-scalars.
func values(t *testing.T, nodes []typeddata.Node) []any {
	t.Helper()
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		v, ok := typeddata.Value(n)
		require.True(t, ok, "expected a scalar, got %T", n)
		out = append(out, v)
	}
	return out
}

func resolve(t *testing.T, root typeddata.Node, path string) []typeddata.Node {
	t.Helper()
	nodes, err := Resolve(root, datapath.Expand(path))
	require.NoError(t, err)
	require.NotNil(t, nodes, "resolutions are never nil")
	return nodes
}

func TestResolve_Identity(t *testing.T) {
	article := testutil.NewArticle("node0")

	nodes := resolve(t, article, "")
	require.Len(t, nodes, 1)
	assert.Same(t, article, nodes[0])

	nodes = resolve(t, nil, "")
	require.Len(t, nodes, 1)
	assert.Nil(t, nodes[0])

	scalar := typeddata.NewScalar(nil, "foo")
	nodes = resolve(t, scalar, "")
	assert.Equal(t, []any{"foo"}, values(t, nodes))
}

func TestResolve_NilRoot(t *testing.T) {
	nodes := resolve(t, nil, "uid.entity.name")
	assert.Empty(t, nodes)
}

func TestResolve_Article(t *testing.T) {
	article := testutil.NewArticle("node0", testutil.NewUser("user0"))

	tests := []struct {
		path string
		want []any
	}{
		{path: "title", want: []any{"node0"}},
		{path: "uid.entity.name.value", want: []any{"user0"}},
		{path: "uid.0.entity.name.0.value", want: []any{"user0"}},
		{path: "uid.entity.name.1.value", want: []any{}},
		{path: "uid.entity.roles.0", want: []any{}},
		{path: "uid.0.entity.roles.0", want: []any{}},
		{path: "uid.0.entity.roles.1", want: []any{}},
		{path: "uid.1.entity.name", want: []any{}},
		{path: "uid.target_id", want: []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, values(t, resolve(t, article, tt.path)))
		})
	}
}

func TestResolve_ListAndReferenceShapes(t *testing.T) {
	article := testutil.NewArticle("node0", testutil.NewUser("user0"))

	nodes := resolve(t, article, "uid.entity.name")
	require.Len(t, nodes, 1)
	name, ok := nodes[0].(*typeddata.List)
	require.True(t, ok, "name should resolve to the field list")
	assert.Equal(t, 1, name.Len())

	nodes = resolve(t, article, "uid.entity")
	require.Len(t, nodes, 1)
	_, ok = nodes[0].(*typeddata.Reference)
	assert.True(t, ok, "the final reference is returned as is")

	nodes = resolve(t, article, "uid.0")
	require.Len(t, nodes, 1)
	assert.Equal(t, testutil.ReferenceItem, typeddata.DataType(nodes[0]))
}

func TestResolve_DereferenceIsNotNameBased(t *testing.T) {
	user := testutil.NewUser("user0")
	root := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"author": typeddata.NewReference(nil, user),
	})

	nodes := resolve(t, root, "author.name.value")
	assert.Equal(t, []any{"user0"}, values(t, nodes))
}

func TestResolve_UnsetReference(t *testing.T) {
	article := testutil.NewArticle("node0", nil, testutil.NewUser("user1"))

	assert.Equal(t, []any{"user1"}, values(t, resolve(t, article, "uid.entity.name.value")))
	assert.Empty(t, resolve(t, article, "uid.0.entity.name"))
	assert.Len(t, resolve(t, article, "uid.entity"), 2, "unset references are still reachable themselves")
}

func TestResolve_Ordering(t *testing.T) {
	// outer list of two complexes, each holding a two-element list
	inner := func(a, b string) typeddata.Node {
		return typeddata.NewComplex(nil, map[string]typeddata.Node{
			"tags": testutil.NewStringList(a, b),
		})
	}
	root := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"items": typeddata.NewList(nil, inner("a1", "a2"), inner("b1", "b2")),
	})

	nodes := resolve(t, root, "items.tags")
	require.Len(t, nodes, 2)

	nested := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"items": typeddata.NewList(nil,
			typeddata.NewComplex(nil, map[string]typeddata.Node{
				"sub": typeddata.NewList(nil,
					typeddata.NewComplex(nil, map[string]typeddata.Node{"v": typeddata.NewScalar(nil, "a1")}),
					typeddata.NewComplex(nil, map[string]typeddata.Node{"v": typeddata.NewScalar(nil, "a2")}),
				),
			}),
			typeddata.NewComplex(nil, map[string]typeddata.Node{
				"sub": typeddata.NewList(nil,
					typeddata.NewComplex(nil, map[string]typeddata.Node{"v": typeddata.NewScalar(nil, "b1")}),
					typeddata.NewComplex(nil, map[string]typeddata.Node{"v": typeddata.NewScalar(nil, "b2")}),
				),
			}),
		),
	})
	assert.Equal(t, []any{"a1", "a2", "b1", "b2"}, values(t, resolve(t, nested, "items.sub.v")))
	assert.Equal(t, []any{"a2", "b2"}, values(t, resolve(t, nested, "items.sub.1.v")))
	assert.Equal(t, []any{"b1", "b2"}, values(t, resolve(t, nested, "items.1.sub.v")))
}

func TestResolve_NestedLists(t *testing.T) {
	root := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"matrix": typeddata.NewList(nil,
			testutil.NewStringList("a", "b"),
			testutil.NewStringList("c"),
		),
	})

	assert.Equal(t, []any{"c"}, values(t, resolve(t, root, "matrix.1.0")))
	assert.Empty(t, resolve(t, root, "matrix.1.1"))
}

func TestResolve_FalsyValuesArePresent(t *testing.T) {
	root := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"zero":  typeddata.NewScalar(nil, 0),
		"empty": typeddata.NewScalar(nil, ""),
		"no":    typeddata.NewScalar(nil, false),
	})

	tests := []struct {
		path string
		want any
	}{
		{path: "zero", want: 0},
		{path: "empty", want: ""},
		{path: "no", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, []any{tt.want}, values(t, resolve(t, root, tt.path)))
		})
	}
}

func TestResolve_IndexStepOnComplex(t *testing.T) {
	root := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"0":   typeddata.NewScalar(nil, "zero"),
		"007": typeddata.NewScalar(nil, "bond"),
	})
	assert.Equal(t, []any{"zero"}, values(t, resolve(t, root, "0")))
	assert.Equal(t, []any{"bond"}, values(t, resolve(t, root, "007")))
	assert.Empty(t, resolve(t, root, "1"))
	assert.Empty(t, resolve(t, root, "7"))
	assert.Empty(t, resolve(t, root, "00"))
}

func TestResolve_ScalarHasNoChildren(t *testing.T) {
	root := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"title": typeddata.NewScalar(nil, "node0"),
	})
	assert.Empty(t, resolve(t, root, "title.value"))
	assert.Empty(t, resolve(t, root, "title.0"))
}

func TestResolve_Idempotent(t *testing.T) {
	article := testutil.NewArticle("node0", testutil.NewUser("user0"), testutil.NewUser("user1"))
	steps := datapath.Expand("uid.entity.name.value")

	first, err := Resolve(article, steps)
	require.NoError(t, err)
	second, err := Resolve(article, steps)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []any{"user0", "user1"}, values(t, first))
}

func TestResolve_LoaderErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("entity storage unavailable")
	loads := 0
	root := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"uid": typeddata.NewList(nil,
			typeddata.NewComplex(nil, map[string]typeddata.Node{
				"entity": typeddata.NewLazyReference(nil, "1", func() (typeddata.Node, error) {
					loads++
					return nil, boom
				}),
			}),
		),
	})

	nodes, err := Resolve(root, datapath.Expand("uid.entity.name"))
	assert.Nil(t, nodes)
	assert.Same(t, boom, err)
	assert.Equal(t, 1, loads)

	// a path ending at the reference never loads it
	nodes, err = Resolve(root, datapath.Expand("uid.entity"))
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
	assert.Equal(t, 1, loads)
}

func TestResolve_LazyReference(t *testing.T) {
	user := testutil.NewUser("user0")
	root := typeddata.NewComplex(nil, map[string]typeddata.Node{
		"owner": typeddata.NewLazyReference(nil, "1", func() (typeddata.Node, error) { return user, nil }),
		"ghost": typeddata.NewLazyReference(nil, "99", func() (typeddata.Node, error) { return nil, nil }),
	})

	assert.Equal(t, []any{"user0"}, values(t, resolve(t, root, "owner.name.value")))
	assert.Empty(t, resolve(t, root, "ghost.name"))
}

func TestResolver_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	r := New(WithLogger(logger))
	_, err := r.Resolve(testutil.NewArticle("node0", testutil.NewUser("user0")), datapath.Expand("uid.entity"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "applied step")
	assert.Contains(t, out, "segment=uid")
	assert.Contains(t, out, "segment=entity")
	assert.Contains(t, out, "in=1 out=1")
}
