// Package collision finds overlapping bodies and resolves their contact.
//
// Detection is a broad phase over a sparse uniform grid: bodies are hashed
// into square cells keyed by the packed (cellX, cellY) pair, and every
// occupied cell is tested against itself and four neighbours (right, bottom,
// bottom-right, bottom-left) so each unordered cell pair is visited once.
//
// Resolution is a [Resolver] chosen by [Policy]: [Merge] fuses bodies,
// [Bounce] separates them and exchanges momentum elastically.
package collision
