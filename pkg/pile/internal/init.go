// Package internal contains the shared infrastructure of the pile packages:
// logging, held-input repeat and a small LRU cache.
// Types and functions in this package are not part of the public API.
package internal
