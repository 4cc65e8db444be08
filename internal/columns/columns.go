// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package columns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"
)

// Policy controls how unresolvable column references are handled.
type Policy int

const (
	// Strict fails the run when a column identifier cannot be resolved.
	Strict Policy = iota
	// Bypass silently skips unresolvable identifiers.
	Bypass
)

// ResolutionError reports a column identifier that could not be resolved
// against the header under the Strict policy.
type ResolutionError struct {
	Identifier string
	Header     []string
}

func (e *ResolutionError) Error() string {
	if e.Header == nil {
		return fmt.Sprintf("invalid column %q: input has no header to resolve names against", e.Identifier)
	}
	return fmt.Sprintf("invalid column %q: not an index below %d or a title in %v", e.Identifier, len(e.Header), e.Header)
}

// Split breaks a comma-separated column spec into trimmed identifiers.
func Split(spec string) []string {
	if spec == "" {
		return nil
	}

	//nolint:prealloc
	var ids []string
	for _, id := range strings.Split(spec, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Resolve maps column identifiers to zero-based positions. Each identifier
// is first tried as a non-negative integer index, then looked up by exact
// name in the header. Duplicates collapse to the first occurrence. A nil or
// empty identifier list resolves to nil, which callers treat as "all
// columns"; a configured list whose identifiers are all skipped under
// Bypass resolves to an empty, non-nil slice, which is an empty selection.
// Resolution is a pure function of the header and the identifier list; it
// happens exactly once per run.
func Resolve(identifiers []string, header []string, policy Policy) ([]int, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}

	positions := make([]int, 0, len(identifiers))
	seen := make(map[int]bool, len(identifiers))

	for _, id := range identifiers {
		pos, ok, err := resolveOne(id, header)
		if err != nil {
			if policy == Bypass {
				log.Debugf("skipping column %q: %v", id, err)
				continue
			}
			return nil, err
		}
		if !ok || seen[pos] {
			continue
		}
		seen[pos] = true
		positions = append(positions, pos)
	}

	return positions, nil
}

// Complement returns the positions of header columns not present in
// positions, in header order. Used when an invert flag applies to a pure
// column selection.
func Complement(positions []int, width int) []int {
	selected := make(map[int]bool, len(positions))
	for _, p := range positions {
		selected[p] = true
	}

	//nolint:prealloc
	var rest []int
	for i := 0; i < width; i++ {
		if !selected[i] {
			rest = append(rest, i)
		}
	}
	return rest
}

func resolveOne(id string, header []string) (int, bool, error) {
	if idx, err := strconv.Atoi(id); err == nil && idx >= 0 {
		// Without a header there is nothing to bound-check against, so any
		// non-negative index is accepted and checked per row.
		if header != nil && idx >= len(header) {
			return 0, false, &ResolutionError{Identifier: id, Header: header}
		}
		return idx, true, nil
	}

	for i, title := range header {
		if title == id {
			return i, true, nil
		}
	}

	return 0, false, &ResolutionError{Identifier: id, Header: header}
}
