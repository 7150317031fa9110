package sweep

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/npillmayer/fontsweep/core"
)

// ParseSizes parses a list of font sizes, separated by commas or blanks.
// Items may be ranges, e.g. "6-14,16-20". Sizes occuring more than once are
// dropped; the order of first occurrence is kept.
func ParseSizes(spec string) ([]int, error) {
	set := linkedhashset.New()
	items := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, item := range items {
		from, to, err := parseRange(item)
		if err != nil {
			return nil, err
		}
		step := 1
		if to < from {
			step = -1
		}
		for s := from; ; s += step {
			set.Add(s)
			if s == to {
				break
			}
		}
	}
	if set.Empty() {
		return nil, core.Error(core.EINVALID, "no font sizes in %q", spec)
	}
	sizes := make([]int, 0, set.Size())
	for _, v := range set.Values() {
		sizes = append(sizes, v.(int))
	}
	tracer().Debugf("parsed sizes %q as %v", spec, sizes)
	return sizes, nil
}

func parseRange(item string) (from, to int, err error) {
	lo, hi, isRange := strings.Cut(item, "-")
	if from, err = parseSize(lo); err != nil {
		return
	}
	if !isRange {
		return from, from, nil
	}
	to, err = parseSize(hi)
	return
}

func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "not a font size: %q", s)
	}
	if err = checkSize(n); err != nil {
		return 0, err
	}
	return n, nil
}
