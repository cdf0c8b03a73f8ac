// Package formats provides parsers for Wavefront OBJ meshes and their MTL
// material libraries.
//
// Parsers read from an io.Reader and return plain data; they never touch the
// filesystem directly. OBJ files reference material libraries by name, which
// the caller resolves through a MaterialOpener.
package formats
