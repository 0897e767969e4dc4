// +build !linux

package generator

// Only linux lets a process volunteer as reparent target for orphans.
// Elsewhere the orphaned children go to init, which reaps them, but the
// maker corpses still accumulate under the generator.
func enableChildSubReaper() {
}
