// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

// Errored reports whether the Manager is carrying a sticky internal error
// from a prior operation, mirroring dalzilio-rudd's (*BDD).Errored in
// errors.go. Public methods that can fail already return their own error
// value; this is for callers that chain several low-level calls (as and()
// does internally) and want to bail out early instead of checking every
// step.
func (m *Manager) Errored() bool { return m.err != nil }

// Err returns the sticky internal error, if any.
func (m *Manager) Err() error { return m.err }
