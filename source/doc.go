// Package source loads sarc archive bytes from local files and HTTP servers.
//
// Archives are read fully into memory, since the accessor works on a single
// contiguous buffer. An expected digest can be supplied to verify the bytes
// before they are handed to the parser.
package source
