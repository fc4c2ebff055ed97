package main

import "flag"

// flagSet wraps flag.FlagSet purely for naming consistency with the other
// vchain-* commands; every flag this command needs already has a native
// flag.FlagSet constructor.
type flagSet struct {
	*flag.FlagSet
}

func newFlagSet(name string) *flagSet {
	return &flagSet{FlagSet: flag.NewFlagSet(name, flag.ContinueOnError)}
}
