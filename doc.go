// Package claymark implements an immediate-mode layout engine: a bump-arena
// element tree builder, a six-pass layout solver, a floating/z-order
// resolver, a render command emitter, an interaction probe, and a
// declarative markup compiler/interpreter that replays a compiled opcode
// program once per frame.
//
// The engine itself never touches a screen, a socket, or a file: those are
// host concerns, wired up by cmd/demo.
package claymark
