// Package yamldoc reads and writes [configtree] trees as YAML while keeping
// the document readable by humans: comments, key order and string quoting
// survive a load/save round trip.
//
// # Loading
//
// [Read], [ReadFile] and the Load methods compose the first YAML document
// with [gopkg.in/yaml.v3] and convert it into a tree. Comments are moved
// onto the entries they describe:
//
//   - Comment lines directly above a key become that value's leading
//     comments.
//   - A comment at the end of a scalar line becomes its inline comment. For
//     a mapping or sequence, the comment after the key is used.
//   - Comments after the last entry of a mapping become its trailing
//     comments. At the root this includes comments at the end of the
//     document.
//   - Comments between two entries always attach to the following entry.
//     Where they were separated from its own leading comments, a
//     [configtree.BlankLine] entry marks the gap. Blank lines directly
//     above an entry or its comments become [configtree.BlankLine] entries
//     too.
//
// Merge keys ("<<") are expanded into the mapping and aliases are replaced
// by copies of their anchored values. A document may expand at most 50
// aliases to mappings or sequences; more fail with [ErrInvalidYAML].
//
// # Saving
//
// [Document.Bytes], [Document.Encode] and [Document.Save] emit block style
// YAML with two-space indentation by default. String styles are kept.
// Plain strings that would read back as another type (for example "true")
// are double quoted. Numbers and booleans reuse their source spelling while
// unchanged.
//
// [ParseValue] reads a single value of any kind, such as a command-line
// argument, and [MarshalValue] writes one back.
//
// # Known losses
//
// Some information cannot be reproduced exactly:
//
//   - Comments attached to an alias reference, and anchors themselves.
//   - Blank lines at the edges of the document comments, and a blank line
//     ending the comments of the first key, which reads back as the
//     document comment.
//   - Blank lines after a literal or folded block, which belong to it.
//   - Several inline comments on one value are joined on one line.
//   - Keys containing "." are readable by iterating the mapping but cannot
//     be addressed by path.
//   - Plain multi-line strings are written as literal blocks.
//   - An empty value ("key:") is written as "key: null".
//
// # Example
//
//	doc, err := yamldoc.ReadFile("config.yaml")
//	if err != nil {
//		return err
//	}
//
//	port, _ := doc.GetInt("server.port")
//
//	// Comments on server.port are kept.
//	if err := doc.Set("server.port", port+1); err != nil {
//		return err
//	}
//
//	return doc.Save("config.yaml")
package yamldoc
