package frame

import (
	"math"
	"sort"

	"github.com/MaMMoS-project/mammos-entity/errors"
)

var nan = math.NaN()

// Join direction.
const (
	Inner = "inner"
	Left  = "left"
	Right = "right"
	Outer = "outer"
	Cross = "cross"
)

// JoinOptions selects the join keys and direction.
//
// Keys: On names columns present on both sides; LeftOn/RightOn name distinct
// key columns per side. With neither set, the join is natural (all shared
// column names). Cross joins take no keys at all.
//
// Suffixes disambiguate overlapping non-key columns; nil means the defaults
// "_x"/"_y". Two empty suffixes with an actual overlap are an error.
// Indicator appends a "_merge" column valued left_only, right_only or both.
type JoinOptions struct {
	How       string
	On        []string
	LeftOn    []string
	RightOn   []string
	Suffixes  []string
	Indicator bool
}

// MergeColumn is the name of the indicator column.
const MergeColumn = "_merge"

// rowPair couples a left row index with a right row index; -1 marks the
// missing side of an unmatched row.
type rowPair struct {
	left, right int
}

// Join performs a relational join of two frames with dataframe-merge
// semantics. Row order is deterministic: left rows in order, each with its
// matching right rows in right order; outer joins append unmatched right
// rows last.
func Join(left, right *Frame, opts JoinOptions) (*Frame, error) {
	how := opts.How
	if how == "" {
		how = Inner
	}
	switch how {
	case Inner, Left, Right, Outer, Cross:
	default:
		return nil, errors.Newf("unsupported join %q", how)
	}

	leftOn, rightOn, err := resolveKeys(left, right, how, opts)
	if err != nil {
		return nil, err
	}

	pairs := matchRows(left, right, how, leftOn, rightOn)

	suffixes := opts.Suffixes
	if suffixes == nil {
		suffixes = []string{"_x", "_y"}
	}
	if len(suffixes) != 2 {
		return nil, errors.Newf("need exactly two suffixes, got %d", len(suffixes))
	}

	return assemble(left, right, pairs, leftOn, rightOn, suffixes, opts)
}

func resolveKeys(left, right *Frame, how string, opts JoinOptions) ([]string, []string, error) {
	hasOn := len(opts.On) > 0
	hasSideOn := len(opts.LeftOn) > 0 || len(opts.RightOn) > 0

	if how == Cross {
		if hasOn || hasSideOn {
			return nil, nil, errors.New("cross join takes no keys")
		}
		return nil, nil, nil
	}
	if hasOn && hasSideOn {
		return nil, nil, errors.New(`pass either "on" or "left_on"/"right_on", not both`)
	}
	if hasSideOn {
		if len(opts.LeftOn) != len(opts.RightOn) {
			return nil, nil, errors.Newf("left_on has %d keys, right_on has %d",
				len(opts.LeftOn), len(opts.RightOn))
		}
		if err := checkKeys(left, opts.LeftOn); err != nil {
			return nil, nil, err
		}
		if err := checkKeys(right, opts.RightOn); err != nil {
			return nil, nil, err
		}
		return opts.LeftOn, opts.RightOn, nil
	}
	on := opts.On
	if !hasOn {
		// natural join on the shared column names
		for _, name := range left.Names() {
			if right.Has(name) {
				on = append(on, name)
			}
		}
		if len(on) == 0 {
			return nil, nil, errors.New("no common columns to join on")
		}
	}
	if err := checkKeys(left, on); err != nil {
		return nil, nil, err
	}
	if err := checkKeys(right, on); err != nil {
		return nil, nil, err
	}
	return on, on, nil
}

func checkKeys(f *Frame, keys []string) error {
	for _, k := range keys {
		if !f.Has(k) {
			return errors.Newf("no column %q", k)
		}
	}
	return nil
}

func matchRows(left, right *Frame, how string, leftOn, rightOn []string) []rowPair {
	if how == Cross {
		pairs := make([]rowPair, 0, left.NumRows()*right.NumRows())
		for li := 0; li < left.NumRows(); li++ {
			for ri := 0; ri < right.NumRows(); ri++ {
				pairs = append(pairs, rowPair{li, ri})
			}
		}
		return pairs
	}

	var pairs []rowPair
	rightMatched := make([]bool, right.NumRows())

	appendLeftward := func(unmatchedKept bool) {
		for li := 0; li < left.NumRows(); li++ {
			found := false
			for ri := 0; ri < right.NumRows(); ri++ {
				if keysEqual(left, li, leftOn, right, ri, rightOn) {
					pairs = append(pairs, rowPair{li, ri})
					rightMatched[ri] = true
					found = true
				}
			}
			if !found && unmatchedKept {
				pairs = append(pairs, rowPair{li, -1})
			}
		}
	}

	switch how {
	case Inner:
		appendLeftward(false)
	case Left:
		appendLeftward(true)
	case Right:
		for ri := 0; ri < right.NumRows(); ri++ {
			found := false
			for li := 0; li < left.NumRows(); li++ {
				if keysEqual(left, li, leftOn, right, ri, rightOn) {
					pairs = append(pairs, rowPair{li, ri})
					found = true
				}
			}
			if !found {
				pairs = append(pairs, rowPair{-1, ri})
			}
		}
	case Outer:
		appendLeftward(true)
		for ri := 0; ri < right.NumRows(); ri++ {
			if !rightMatched[ri] {
				pairs = append(pairs, rowPair{-1, ri})
			}
		}
	}
	return pairs
}

// keysEqual compares key cells with strict equality, so NaN never matches.
func keysEqual(left *Frame, li int, leftOn []string, right *Frame, ri int, rightOn []string) bool {
	for i := range leftOn {
		lc, _ := left.Column(leftOn[i])
		rc, _ := right.Column(rightOn[i])
		if lc.Cells[li] != rc.Cells[ri] {
			return false
		}
	}
	return true
}

func assemble(left, right *Frame, pairs []rowPair, leftOn, rightOn, suffixes []string, opts JoinOptions) (*Frame, error) {
	sharedKey := make(map[string]bool)
	if len(opts.LeftOn) == 0 && opts.How != Cross {
		for _, k := range leftOn {
			sharedKey[k] = true
		}
	}

	// overlap = non-shared-key names present on both sides
	overlap := make(map[string]bool)
	for _, name := range left.Names() {
		if right.Has(name) && !sharedKey[name] {
			overlap[name] = true
		}
	}
	if len(overlap) > 0 && suffixes[0] == "" && suffixes[1] == "" {
		return nil, errors.Newf("columns overlap but no suffix specified: %v", sortedNames(overlap))
	}

	out := New()
	addSide := func(f *Frame, side int, take func(p rowPair) int) error {
		for _, col := range f.Columns() {
			name := col.Name
			if side == 1 && sharedKey[name] {
				continue // shared keys come from the left pass
			}
			if overlap[name] {
				name += suffixes[side]
			}
			cells := make([]any, len(pairs))
			for i, p := range pairs {
				row := take(p)
				if row < 0 {
					// a shared key is present on whichever side matched
					if side == 0 && sharedKey[col.Name] && p.right >= 0 {
						rc, _ := right.Column(rightKeyFor(col.Name, leftOn, rightOn))
						cells[i] = rc.Cells[p.right]
						continue
					}
					cells[i] = nil
					continue
				}
				cells[i] = col.Cells[row]
			}
			if err := out.AddColumn(name, cells); err != nil {
				return err
			}
		}
		return nil
	}
	if err := addSide(left, 0, func(p rowPair) int { return p.left }); err != nil {
		return nil, err
	}
	if err := addSide(right, 1, func(p rowPair) int { return p.right }); err != nil {
		return nil, err
	}

	if opts.Indicator {
		cells := make([]any, len(pairs))
		for i, p := range pairs {
			switch {
			case p.left < 0:
				cells[i] = "right_only"
			case p.right < 0:
				cells[i] = "left_only"
			default:
				cells[i] = "both"
			}
		}
		if err := out.AddColumn(MergeColumn, cells); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func rightKeyFor(leftKey string, leftOn, rightOn []string) string {
	for i, k := range leftOn {
		if k == leftKey {
			return rightOn[i]
		}
	}
	return leftKey
}

func sortedNames(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
