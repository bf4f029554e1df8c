// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/dataresolver/internal/fileutil"
	"github.com/erraggy/dataresolver/typeddata"
)

// Display type names used by the fixtures.
const (
	ArticleType   = "entity:node:article"
	UserType      = "entity:user"
	RoleType      = "entity:user_role"
	StringItem    = "field_item:string"
	ReferenceItem = "field_item:entity_reference"
)

// RoleSchema returns the schema of a user role entity: {label}.
func RoleSchema() *typeddata.ComplexSchema {
	return &typeddata.ComplexSchema{
		Name: RoleType,
		Properties: map[string]typeddata.Schema{
			"label": &typeddata.ScalarSchema{Type: typeddata.TypeString},
		},
	}
}

// UserSchema returns the schema of a user entity:
// {name: [ {value} ], roles: [ {target_id, entity -> role} ]}.
func UserSchema() *typeddata.ComplexSchema {
	return &typeddata.ComplexSchema{
		Name: UserType,
		Properties: map[string]typeddata.Schema{
			"name":  stringFieldSchema(),
			"roles": referenceFieldSchema(RoleSchema()),
		},
	}
}

// ArticleSchema returns the schema of an article node:
// {title, uid: [ {target_id, entity -> user} ]}.
func ArticleSchema() *typeddata.ComplexSchema {
	return &typeddata.ComplexSchema{
		Name: ArticleType,
		Properties: map[string]typeddata.Schema{
			"title": &typeddata.ScalarSchema{Type: typeddata.TypeString},
			"uid":   referenceFieldSchema(UserSchema()),
		},
	}
}

func stringFieldSchema() *typeddata.ListSchema {
	return &typeddata.ListSchema{
		Name: "field_item_list:string",
		Item: &typeddata.ComplexSchema{
			Name: StringItem,
			Properties: map[string]typeddata.Schema{
				"value": &typeddata.ScalarSchema{Type: typeddata.TypeString},
			},
		},
	}
}

func referenceFieldSchema(target typeddata.Schema) *typeddata.ListSchema {
	return &typeddata.ListSchema{
		Name: "field_item_list:entity_reference",
		Item: &typeddata.ComplexSchema{
			Name: ReferenceItem,
			Properties: map[string]typeddata.Schema{
				"target_id": &typeddata.ScalarSchema{Type: typeddata.TypeInteger},
				"entity":    typeddata.NewReferenceSchema(target),
			},
		},
	}
}

// NewStringField returns a string field list holding one item per value.
func NewStringField(values ...string) *typeddata.List {
	schema := stringFieldSchema()
	items := make([]typeddata.Node, 0, len(values))
	for _, v := range values {
		items = append(items, typeddata.NewComplex(schema.Item, map[string]typeddata.Node{
			"value": typeddata.NewScalar(&typeddata.ScalarSchema{Type: typeddata.TypeString}, v),
		}))
	}
	return typeddata.NewList(schema, items...)
}

// NewReferenceField returns an entity reference field list with one item per
// target. Item ids are assigned from 1 in order; a nil target produces an
// unset reference.
func NewReferenceField(targetSchema typeddata.Schema, targets ...typeddata.Node) *typeddata.List {
	schema := referenceFieldSchema(targetSchema)
	item := schema.Item.(*typeddata.ComplexSchema)
	refSchema, _ := item.Property("entity")

	items := make([]typeddata.Node, 0, len(targets))
	for i, target := range targets {
		items = append(items, typeddata.NewComplex(item, map[string]typeddata.Node{
			"target_id": typeddata.NewScalar(&typeddata.ScalarSchema{Type: typeddata.TypeInteger}, i+1),
			"entity":    typeddata.NewReference(refSchema, target),
		}))
	}
	return typeddata.NewList(schema, items...)
}

// NewRole returns a role entity.
func NewRole(label string) *typeddata.Complex {
	return typeddata.NewComplex(RoleSchema(), map[string]typeddata.Node{
		"label": typeddata.NewScalar(&typeddata.ScalarSchema{Type: typeddata.TypeString}, label),
	})
}

// NewUser returns a user entity with the given name and roles.
func NewUser(name string, roles ...*typeddata.Complex) *typeddata.Complex {
	targets := make([]typeddata.Node, 0, len(roles))
	for _, r := range roles {
		targets = append(targets, r)
	}
	return typeddata.NewComplex(UserSchema(), map[string]typeddata.Node{
		"name":  NewStringField(name),
		"roles": NewReferenceField(RoleSchema(), targets...),
	})
}

// NewArticle returns an article node authored by the given users. Passing no
// authors yields an empty uid field; a nil author yields an unset reference.
func NewArticle(title string, authors ...*typeddata.Complex) *typeddata.Complex {
	targets := make([]typeddata.Node, 0, len(authors))
	for _, a := range authors {
		if a == nil {
			targets = append(targets, nil)
			continue
		}
		targets = append(targets, a)
	}
	return typeddata.NewComplex(ArticleSchema(), map[string]typeddata.Node{
		"title": typeddata.NewScalar(&typeddata.ScalarSchema{Type: typeddata.TypeString}, title),
		"uid":   NewReferenceField(UserSchema(), targets...),
	})
}

// ArticleSchemaYAML is a schema document equivalent to ArticleSchema, with
// references resolved by id through an entity store.
const ArticleSchemaYAML = `definitions:
  string_field:
    type: array
    x-data-type: "field_item_list:string"
    items:
      type: object
      x-data-type: "field_item:string"
      properties:
        value: { type: string }
  user_role:
    type: object
    x-data-type: "entity:user_role"
    properties:
      label: { type: string }
  user:
    type: object
    x-data-type: "entity:user"
    properties:
      name: { $ref: "#/definitions/string_field" }
      roles:
        type: array
        items:
          type: object
          x-data-type: "field_item:entity_reference"
          properties:
            target_id: { type: string }
            entity: { x-reference: user_role, x-reference-key: target_id }
  node:article:
    type: object
    x-data-type: "entity:node:article"
    properties:
      title: { type: string }
      uid:
        type: array
        items:
          type: object
          x-data-type: "field_item:entity_reference"
          properties:
            target_id: { type: string }
            entity: { x-reference: user, x-reference-key: target_id }
`

// EntitiesYAML is an entities document holding two users, one role and two
// articles. Article "2" references a user that does not exist.
const EntitiesYAML = `entities:
  user_role:
    editor: { label: Editor }
  user:
    "1":
      name: [ { value: user0 } ]
      roles: []
    "2":
      name: [ { value: user1 } ]
      roles: [ { target_id: editor } ]
  node:article:
    "1":
      title: node0
      uid: [ { target_id: "1" } ]
    "2":
      title: node1
      uid: [ { target_id: "99" }, { target_id: "2" } ]
`

// NewStringList returns an untyped list of string scalars.
func NewStringList(values ...string) *typeddata.List {
	items := make([]typeddata.Node, 0, len(values))
	for _, v := range values {
		items = append(items, typeddata.NewScalar(nil, v))
	}
	return typeddata.NewList(nil, items...)
}

// WriteTempYAML marshals doc to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals doc to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	return WriteTempFile(t, "test.json", string(data))
}

// WriteTempFile writes content to name inside a per-test temporary directory.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}
