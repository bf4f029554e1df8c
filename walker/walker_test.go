package walker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/internal/testutil"
	"github.com/erraggy/dataresolver/typeddata"
	"github.com/erraggy/dataresolver/validator"
)

var articlePaths = []string{
	"title",
	"uid",
	"uid.entity",
	"uid.entity.name",
	"uid.entity.name.value",
	"uid.entity.roles",
	"uid.entity.roles.entity",
	"uid.entity.roles.entity.label",
	"uid.entity.roles.target_id",
	"uid.target_id",
}

// personSchema returns an object schema whose friends list holds persons.
func personSchema() *typeddata.ComplexSchema {
	person := &typeddata.ComplexSchema{Name: "person"}
	person.Properties = map[string]typeddata.Schema{
		"name":    &typeddata.ScalarSchema{Type: typeddata.TypeString},
		"friends": &typeddata.ListSchema{Item: person},
	}
	return person
}

func assertAllValid(t *testing.T, root typeddata.Schema, paths []string) {
	t.Helper()
	for _, p := range paths {
		assert.NoError(t, validator.ValidatePath(root, datapath.Expand(p), p), p)
	}
}

func TestAction(t *testing.T) {
	tests := []struct {
		action Action
		want   string
		valid  bool
	}{
		{Continue, "Continue", true},
		{SkipChildren, "SkipChildren", true},
		{Stop, "Stop", true},
		{Action(7), "Action(7)", false},
		{Action(-1), "Action(-1)", false},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.String())
			assert.Equal(t, tt.valid, tt.action.IsValid())
		})
	}
}

func TestPaths_Article(t *testing.T) {
	schema := testutil.ArticleSchema()

	paths, err := Paths(schema)
	require.NoError(t, err)
	assert.Equal(t, articlePaths, paths)
	assertAllValid(t, schema, paths)
}

func TestPaths_MaxDepth(t *testing.T) {
	schema := testutil.ArticleSchema()

	var skipped []string
	paths, err := Paths(schema,
		WithMaxDepth(2),
		WithSkippedHandler(func(wc *WalkContext, reason string, _ typeddata.Schema) {
			assert.Equal(t, SkipDepth, reason)
			skipped = append(skipped, wc.Path)
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "uid", "uid.entity", "uid.target_id"}, paths)
	assert.Equal(t, []string{"uid.entity.name", "uid.entity.roles"}, skipped)

	paths, err = Paths(schema, WithMaxDepth(0))
	require.NoError(t, err)
	assert.Equal(t, articlePaths, paths, "non-positive depth keeps the default")
}

func TestPaths_RecursiveSchema(t *testing.T) {
	schema := personSchema()

	paths, err := Paths(schema, WithMaxDepth(3))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"friends",
		"friends.friends",
		"friends.friends.friends",
		"friends.friends.name",
		"friends.name",
		"name",
	}, paths)
	assertAllValid(t, schema, paths)

	paths, err = Paths(schema)
	require.NoError(t, err)
	for _, p := range paths {
		assert.LessOrEqual(t, len(datapath.Expand(p)), DefaultMaxDepth)
	}
	assertAllValid(t, schema, paths)
}

func TestPaths_ReferenceCycle(t *testing.T) {
	var a, b *typeddata.ReferenceSchema
	a = typeddata.NewLazyReferenceSchema("b", func() typeddata.Schema { return b })
	b = typeddata.NewLazyReferenceSchema("a", func() typeddata.Schema { return a })
	root := &typeddata.ComplexSchema{Properties: map[string]typeddata.Schema{"loop": a}}

	var reasons []string
	paths, err := Paths(root, WithSkippedHandler(func(wc *WalkContext, reason string, s typeddata.Schema) {
		assert.Equal(t, "loop", wc.Path)
		assert.Same(t, a, s)
		reasons = append(reasons, reason)
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"loop"}, paths)
	assert.Equal(t, []string{SkipCycle}, reasons)
	assertAllValid(t, root, paths)
}

func TestPaths_SelfItemList(t *testing.T) {
	nested := &typeddata.ListSchema{Name: "nested"}
	nested.Item = nested

	tests := []struct {
		name  string
		root  typeddata.Schema
		paths []string
	}{
		{name: "root", root: nested, paths: []string{}},
		{
			name:  "property",
			root:  &typeddata.ComplexSchema{Properties: map[string]typeddata.Schema{"nested": nested}},
			paths: []string{"nested"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reasons []string
			paths, err := Paths(tt.root, WithSkippedHandler(func(_ *WalkContext, reason string, s typeddata.Schema) {
				assert.Same(t, nested, s)
				reasons = append(reasons, reason)
			}))
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.paths, paths)
			assert.Equal(t, []string{SkipCycle}, reasons)
		})
	}
}

func TestPaths_ListReferenceLoop(t *testing.T) {
	list := &typeddata.ListSchema{}
	ref := typeddata.NewLazyReferenceSchema("list", func() typeddata.Schema { return list })
	list.Item = ref
	root := &typeddata.ComplexSchema{Properties: map[string]typeddata.Schema{"items": list}}

	var reasons []string
	paths, err := Paths(root, WithSkippedHandler(func(_ *WalkContext, reason string, _ typeddata.Schema) {
		reasons = append(reasons, reason)
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"items"}, paths)
	assert.Equal(t, []string{SkipCycle}, reasons)
}

func TestPaths_UnresolvedReference(t *testing.T) {
	root := &typeddata.ComplexSchema{Properties: map[string]typeddata.Schema{
		"ref": typeddata.NewReferenceSchema(nil),
	}}

	paths, err := Paths(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"ref"}, paths)
}

func TestPaths_UnaddressableNames(t *testing.T) {
	scalar := &typeddata.ScalarSchema{Type: typeddata.TypeString}
	root := &typeddata.ComplexSchema{Properties: map[string]typeddata.Schema{
		"":     scalar,
		"007":  scalar,
		"7":    scalar,
		"a.b":  scalar,
		"ok":   scalar,
		"gone": nil,
	}}

	var skipped []string
	paths, err := Paths(root, WithSkippedHandler(func(wc *WalkContext, reason string, _ typeddata.Schema) {
		assert.Equal(t, SkipName, reason)
		skipped = append(skipped, wc.Name)
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"007", "7", "ok"}, paths)
	assert.Equal(t, []string{"", "a.b"}, skipped)
	assertAllValid(t, root, paths)
}

func TestWalk_Handlers(t *testing.T) {
	schema := testutil.ArticleSchema()

	t.Run("visits wrappers before their target", func(t *testing.T) {
		var visits []string
		err := Walk(schema, WithMaxDepth(2), WithSchemaHandler(func(wc *WalkContext, s typeddata.Schema) Action {
			visits = append(visits, wc.Path+"="+s.DataType())
			return Continue
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"=" + testutil.ArticleType,
			"title=string",
			"uid=field_item_list:entity_reference",
			"uid=" + testutil.ReferenceItem,
			"uid.entity=reference",
			"uid.entity=" + testutil.UserType,
			"uid.target_id=integer",
		}, visits)
	})

	t.Run("skip children", func(t *testing.T) {
		var visited []string
		err := Walk(schema, WithSchemaHandler(func(wc *WalkContext, _ typeddata.Schema) Action {
			visited = append(visited, wc.Path)
			if wc.Path == "uid" {
				return SkipChildren
			}
			return Continue
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"", "title", "uid"}, visited)
	})

	t.Run("stop", func(t *testing.T) {
		count := 0
		err := Walk(schema, WithSchemaHandler(func(*WalkContext, typeddata.Schema) Action {
			count++
			if count == 3 {
				return Stop
			}
			return Continue
		}))
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("context fields", func(t *testing.T) {
		err := Walk(schema, WithSchemaHandler(func(wc *WalkContext, _ typeddata.Schema) Action {
			if wc.Path == "uid.entity.name.value" {
				assert.Equal(t, "value", wc.Name)
				assert.Equal(t, 4, wc.Depth)
				assert.False(t, wc.IsRoot())
			}
			if wc.Path == "" {
				assert.True(t, wc.IsRoot())
				assert.Equal(t, "", wc.Name)
			}
			return Continue
		}))
		require.NoError(t, err)
	})
}

func TestWalk_Context(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	err := Walk(testutil.ArticleSchema(), WithUserContext(ctx), WithSchemaHandler(func(wc *WalkContext, _ typeddata.Schema) Action {
		assert.Equal(t, "v", wc.Context().Value(key{}))
		return Continue
	}))
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err = Walk(testutil.ArticleSchema(), WithUserContext(cancelled))
	assert.ErrorIs(t, err, context.Canceled)

	wc := &WalkContext{}
	assert.Equal(t, context.Background(), wc.Context())
	assert.Equal(t, "v", wc.WithContext(ctx).Context().Value(key{}))
}

func TestWalk_NilSchema(t *testing.T) {
	err := Walk(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil schema")

	_, err = Paths(nil)
	assert.Error(t, err)
}

func TestCollectPaths(t *testing.T) {
	infos, err := CollectPaths(testutil.ArticleSchema(), WithMaxDepth(3))
	require.NoError(t, err)

	byPath := make(map[string]*PathInfo, len(infos))
	for _, info := range infos {
		byPath[info.Path] = info
	}

	tests := []struct {
		path     string
		name     string
		dataType string
		multiple bool
	}{
		{"title", "title", "string", false},
		{"uid", "uid", testutil.ReferenceItem, true},
		{"uid.entity", "entity", testutil.UserType, true},
		{"uid.entity.name", "name", testutil.StringItem, true},
		{"uid.target_id", "target_id", "integer", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			info, ok := byPath[tt.path]
			require.True(t, ok)
			assert.Equal(t, tt.name, info.Name)
			assert.Equal(t, tt.dataType, info.DataType)
			assert.Equal(t, tt.multiple, info.Multiple)
		})
	}

	list := &typeddata.ListSchema{Item: personSchema()}
	infos, err = CollectPaths(list, WithMaxDepth(1))
	require.NoError(t, err)
	require.Len(t, infos, 2)
	for _, info := range infos {
		assert.True(t, info.Multiple, info.Path)
	}
}
