package options

// sequence.go implements the compact search-space grammar used to specify
// allowed-value lists in configuration (setAllowedCellSizeFactors and
// friends). Adapted from the teacher's snapshot-index sequence format
// (lib/format/format.go's ExpandSequenceFormat): a series of tokens
// separated by "+"/"-", each token either a single number or a "start..end"
// range, letting a caller add and remove numbers from a set. Extended here
// with an optional ":step" suffix on ranges so float ranges like
// "0.8..1.2:0.1" are expressible, since cell-size factors are continuous
// rather than integer snapshot indices.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const bigSequence = 1 << 16

// ExpandFloat64Sequence expands a sequence-format string into a sorted,
// duplicate-free list of float64s. Examples: "1.0", "0.8,1.0,1.2",
// "0.8..1.2:0.1", "0.5..2.0:0.5 - 1.0".
func ExpandFloat64Sequence(format string) ([]float64, error) {
	tok, err := tokenizeSequence(format)
	if err != nil {
		return nil, err
	}
	adds, subs, err := addsSubs(tok)
	if err != nil {
		return nil, err
	}

	const scale = 1e9 // quantize to avoid float-map key drift
	m := map[int64]float64{}
	for _, a := range adds {
		vals, err := parseFloatToken(a)
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			key := int64(v*scale + sign(v)*0.5)
			if _, ok := m[key]; ok {
				return nil, fmt.Errorf("the value %g is added more than once", v)
			}
			m[key] = float64(key) / scale
		}
	}
	for _, s := range subs {
		vals, err := parseFloatToken(s)
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			key := int64(v*scale + sign(v)*0.5)
			if _, ok := m[key]; !ok {
				return nil, fmt.Errorf("the value %g is removed more times than it was inserted", v)
			}
			delete(m, key)
		}
	}

	if len(m) > bigSequence {
		return nil, fmt.Errorf("this sequence would have %d elements, which is almost certainly a bug", len(m))
	}

	out := make([]float64, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out, nil
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// ExpandIntSequence expands a sequence-format string into a sorted,
// duplicate-free list of ints, e.g. "1,2,4,8" or "1..8".
func ExpandIntSequence(format string) ([]int, error) {
	vals, err := ExpandFloat64Sequence(format)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out, nil
}

func tokenizeSequence(format string) ([]string, error) {
	clean := strings.ReplaceAll(format, "+", " + ")
	clean = strings.ReplaceAll(clean, ",", " + ")
	// Preserve "-" inside numeric ranges like "-1.0..1.0" by only treating
	// "-" as an operator when it isn't the first character of a token.
	var b strings.Builder
	for i := 0; i < len(clean); i++ {
		if clean[i] == '-' && i > 0 && clean[i-1] != ' ' && clean[i-1] != 'e' && clean[i-1] != 'E' {
			b.WriteString(" - ")
		} else {
			b.WriteByte(clean[i])
		}
	}

	rawTok := strings.Split(b.String(), " ")
	tok := []string{}
	for _, t := range rawTok {
		t = strings.TrimSpace(t)
		if t != "" {
			tok = append(tok, t)
		}
	}
	if len(tok) == 0 {
		return nil, fmt.Errorf("the sequence format string is empty")
	}
	return tok, nil
}

func addsSubs(tok []string) (adds, subs []string, err error) {
	adds, subs = []string{}, []string{}
	start := 0
	if tok[0] != "+" && tok[0] != "-" {
		if err := checkToken(tok[0]); err != nil {
			return nil, nil, fmt.Errorf("element 1, %q: %s", tok[0], err)
		}
		adds = append(adds, tok[0])
		start = 1
	}

	for i := start; i < len(tok); i += 2 {
		if tok[i] != "-" && tok[i] != "+" {
			return nil, nil, fmt.Errorf("element %d, %q should be '-' or '+'", i+1, tok[i])
		}
		if i+1 >= len(tok) {
			return nil, nil, fmt.Errorf("the sequence ends in a trailing %q", tok[i])
		}
		if err := checkToken(tok[i+1]); err != nil {
			return nil, nil, fmt.Errorf("element %d, %q: %s", i+2, tok[i+1], err)
		}
		if tok[i] == "+" {
			adds = append(adds, tok[i+1])
		} else {
			subs = append(subs, tok[i+1])
		}
	}
	return adds, subs, nil
}

func checkToken(tok string) error {
	_, err := parseFloatToken(tok)
	return err
}

// parseFloatToken parses either "v", "start..end", or "start..end:step".
func parseFloatToken(tok string) ([]float64, error) {
	stepParts := strings.SplitN(tok, ":", 2)
	rangeTok := stepParts[0]
	step := 0.0
	if len(stepParts) == 2 {
		var err error
		step, err = strconv.ParseFloat(stepParts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid step", stepParts[1])
		}
		if step <= 0 {
			return nil, fmt.Errorf("step %q must be positive", stepParts[1])
		}
	}

	bounds := strings.Split(rangeTok, "..")
	switch len(bounds) {
	case 1:
		v, err := strconv.ParseFloat(bounds[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", bounds[0])
		}
		return []float64{v}, nil
	case 2:
		start, err1 := strconv.ParseFloat(bounds[0], 64)
		end, err2 := strconv.ParseFloat(bounds[1], 64)
		if err1 != nil {
			return nil, fmt.Errorf("%q is not a number", bounds[0])
		}
		if err2 != nil {
			return nil, fmt.Errorf("%q is not a number", bounds[1])
		}
		if end < start {
			return nil, fmt.Errorf("lower bound %g is larger than upper bound %g", start, end)
		}
		if step == 0 {
			step = 1
		}
		out := []float64{}
		n := 0
		for v := start; v <= end+1e-9; v = start + float64(n)*step {
			out = append(out, v)
			n++
			if n > bigSequence {
				break
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("has more than one '..'")
	}
}
