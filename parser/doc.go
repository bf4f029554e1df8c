// Package parser reads schema and entities documents and builds typed data
// from them.
//
// Both document kinds may be YAML or JSON. The format is taken from the file
// extension when there is one and detected from the content otherwise.
// Documents larger than the configured limit (WithMaxFileSize, 10 MiB by
// default) are rejected with a *dataerrors.ResourceLimitError.
//
// # Schema documents
//
// A schema document holds named definitions:
//
//	definitions:
//	  user:
//	    type: object
//	    x-data-type: "entity:user"
//	    properties:
//	      name: { type: string }
//	  node:article:
//	    type: object
//	    x-data-type: "entity:node:article"
//	    properties:
//	      title: { type: string }
//	      uid:
//	        type: array
//	        items:
//	          type: object
//	          properties:
//	            target_id: { type: string }
//	            entity: { x-reference: user, x-reference-key: target_id }
//
// The type keyword is one of object, array (which requires items), string,
// integer, number, boolean or null. When it is omitted the kind is inferred
// from properties or items, and anything else accepts any value.
// "$ref: '#/definitions/<name>'" reuses a definition; definitions may refer
// to themselves. x-data-type sets the display name used in error messages.
//
// A null array element is an empty item. It is removed when the document is
// built, so later elements move down one index.
//
// x-reference makes a property a reference to an entity of the named
// definition. x-reference-key names the sibling property holding the
// target id when the reference property itself is absent from the data.
//
// # Entities documents
//
//	entities:
//	  user:
//	    "1": { name: user0 }
//
// Entities are keyed by definition name, then id. ParseEntities returns them
// ready for entitystore.Memory.PutAll.
//
// # Building typed data
//
//	defs, err := parser.ParseDefinitions(parser.WithFilePath("schema.yaml"))
//	entities, err := parser.ParseEntities(parser.WithFilePath("entities.yaml"))
//	store := entitystore.NewMemory()
//	store.PutAll(entities)
//
//	article, err := defs.Load(store, "node:article", "1")
//	names, err := dataresolver.Resolve(article, "uid.entity.name")
//
// References are not loaded by Build. Each dereference looks the target up
// in the store again, so an entity that is missing simply resolves to
// nothing and a failing store surfaces its own error from the resolution.
package parser
