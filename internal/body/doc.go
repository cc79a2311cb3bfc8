// Package body defines the simulated point mass and the scene contract the
// physics core mutates.
//
// A [Scene] is owned by the caller. The core reads and writes bodies through
// the slice returned by [Scene.Bodies] and asks for removals through
// [Scene.DeleteBodies]; it never frees or reorders bodies itself. [World] is
// the slice-backed scene used by the CLI and the tests.
package body
