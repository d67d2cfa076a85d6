package main

import (
	"fmt"
	"strconv"
	"strings"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// optionalBool is a boolean flag that remembers whether it was given, so an
// absent -index keeps the configured default.
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(v string) error {
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	b.set = true
	b.value = parsed
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }
