package main

import "flag"

// flagSet wraps flag.FlagSet to add a uint64 flag constructor; the standard
// library has no native uint64 flag type.
type flagSet struct {
	*flag.FlagSet
}

func newFlagSet(name string) *flagSet {
	return &flagSet{FlagSet: flag.NewFlagSet(name, flag.ContinueOnError)}
}

// Uint64 defines a uint64 flag and returns a pointer to the parsed value.
func (fs *flagSet) Uint64(name string, value uint64, usage string) *uint64 {
	v := uint64Value(value)
	fs.FlagSet.Var(&v, name, usage)
	return (*uint64)(&v)
}
