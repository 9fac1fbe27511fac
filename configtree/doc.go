// Package configtree models configuration values addressable by dotted key
// paths while keeping the formatting metadata attached to them.
//
// A [Value] holds one payload (scalar, nested [Mapping], sequence, or
// nothing) along with its leading, inline and trailing comment lines and,
// for strings, a presentation [Style]. A [Tree] wraps a mapping value and
// adds path-based access:
//
//	tree := configtree.New()
//	tree.Set("server.port", 8080)
//	tree.Get("server.port").Scalar() // 8080
//	tree.Keys(true)                  // [server server.port]
//
// Setting a raw value at an existing path replaces only the payload, so
// comments already attached there survive:
//
//	v := tree.Get("server.port")
//	v.Comments = []string{"Listen port."}
//	tree.Set("server.port", 9090) // comment kept
//
// Passing a [*Value] (or a [*Tree]) adopts it wholesale, comments and style
// included. Setting nil removes the final key; parents that become empty
// are kept.
//
// Key paths split on "."; keys that contain a dot cannot be addressed.
// Reads never fail: a miss returns an absent value.
//
// Values are not safe for concurrent mutation. Serialize writers.
package configtree
