// Package config resolves layered key=value configuration sources into one
// immutable settings snapshot.
//
// Sources are applied lowest precedence first: the project-root scribe.env,
// then the per-user config file, then explicit process-level overrides such
// as environment assignments and CLI flags. A later source fully overwrites
// earlier values per key. Missing or unreadable sources and malformed lines
// are skipped; resolution itself never fails.
//
// The Resolver publishes snapshots through an atomic pointer so concurrent
// readers never observe a partially applied pass. Collaborators read single
// settings through Get or build a typed Config view with BuildConfig.
package config
