// Package doctor checks and repairs the local preconditions a Spacialist
// plugin checkout needs before the host application can load it.
//
// One invocation runs exactly one [Command]. The command line is parsed by
// [Parse], which resolves every token against the fixed option registry
// and refuses unknown, duplicate or conflicting flags:
//
//	res := doctor.Parse(os.Args[1:])
//	if err := res.Err(); err != nil {
//	    // nothing runs
//	}
//
// # Run context
//
// A [Run] carries the resolved paths and lazily loads, at most once per
// process, everything the commands share: the package descriptor, the
// plugin manifest, the host environment and the host database handle.
//
// # Failures
//
// Commands report their outcome through the logger in the context. A
// failure that was already reported is returned wrapping [ErrCheckFailed]
// so the caller can exit non-zero without printing it again; use
// [Reported] to tell the two apart.
package doctor
