// Package schemafile loads serializer schemas from YAML files.
//
// # Schema Overview
//
// A file declares named serializers and, optionally, which one is applied
// to the input table:
//
//	root: catalogue
//	serializers:
//	  item:
//	    fields:
//	      c:                       # plain field reading column "c"
//	  base:
//	    fields:
//	      a: {unique: true}
//	  catalogue:
//	    extends: base              # inherit base's fields first
//	    fields:
//	      A: a                     # shorthand for {source: a}
//	      c: {kind: group, function: list, drop_duplicates: true}
//	      n: {kind: nest, serializer: item}
//	      ng: {kind: nest_group, serializer: item}
//
// Field keys keep their declaration order, which becomes the key order of
// every produced record.
//
// # Errors
//
// Parse builds every serializer eagerly. Unknown references return
// ErrUnknownSerializer, loops through nest or extends return ErrCycle and
// unknown kinds return ErrUnknownKind. An option that does not apply to a
// field's kind, such as source on a nest field, returns
// serializer.ErrInvalidField. Errors from the serializer package,
// such as serializer.ErrGroupFieldAction for a function outside the
// whitelist, are wrapped and can be matched with errors.Is.
package schemafile
