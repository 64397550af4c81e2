package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/intcode/pkg/intcode"
)

// verbosity is a repeatable -v flag.
type verbosity int

func (v *verbosity) String() string   { return strconv.Itoa(int(*v)) }
func (v *verbosity) IsBoolFlag() bool { return true }

func (v *verbosity) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v++
	}
	return nil
}

// parseInts parses "1,-2,3". An empty string yields no values.
func parseInts(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var vals []int64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", f)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// parseAddrs parses "0,4" as memory addresses.
func parseAddrs(s string) ([]intcode.Address, error) {
	vals, err := parseInts(s)
	if err != nil {
		return nil, err
	}
	addrs := make([]intcode.Address, len(vals))
	for i, v := range vals {
		if v < 0 {
			return nil, fmt.Errorf("negative address %d", v)
		}
		addrs[i] = intcode.Address(v)
	}
	return addrs, nil
}

// parsePatches parses "1=12,2=2".
func parsePatches(s string) ([]intcode.Patch, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var patches []intcode.Patch
	for _, f := range strings.Split(s, ",") {
		addr, val, ok := strings.Cut(strings.TrimSpace(f), "=")
		if !ok {
			return nil, fmt.Errorf("bad patch %q, want addr=value", f)
		}
		a, err := strconv.ParseUint(strings.TrimSpace(addr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad patch address %q", addr)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad patch value %q", val)
		}
		patches = append(patches, intcode.Patch{Addr: intcode.Address(a), Value: v})
	}
	return patches, nil
}

func joinInts(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}
