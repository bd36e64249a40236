// Package proc realizes command plans as real OS processes.
//
// It owns every descriptor the engine touches: redirect target files, the
// pipeline's pipe ends, and the children's standard streams. Children are
// spawned with their descriptor tables fully wired, so no post-spawn stream
// surgery is needed, and the parent closes its copies of every transient
// descriptor before returning to the prompt.
package proc
