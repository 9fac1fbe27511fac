// Package treeschema infers JSON Schema (Draft 7) from configuration trees.
//
// Schemas fail open: additionalProperties defaults to true, nothing is
// marked required, and types that disagree across inputs widen (integer and
// number become number; anything else drops the type constraint). The goal
// is a schema that guides editors rather than one that strictly validates.
//
// [Generator.Generate] walks each [configtree.Tree] depth-first:
//
//   - Mappings become objects with properties in key order.
//   - Sequences become arrays. Items of an all-mapping sequence are merged
//     into one object schema; scalar items widen to a common type.
//   - Booleans, integers, floats and strings map to their JSON Schema
//     types. Absent values carry no type constraint.
//   - The last group of leading comment lines, or else the inline comment,
//     becomes the property description.
//
// Several trees are merged with union semantics, so a schema can be built
// from every environment's configuration file at once:
//
//	gen := treeschema.NewGenerator(treeschema.WithTitle("app config"))
//	schema := gen.Generate(dev.Tree, prod.Tree)
//	err := treeschema.Write(os.Stdout, schema, 2)
package treeschema
