package nef

import (
	"errors"
	"fmt"

	star "github.com/nefkit/go-star"
)

// SplitSequence splits residue rows, assumed to belong to one chain,
// into sequentially linked stretches following the NEF linking rules.
//
// A missing or null linking value is treated as middle, so absent start
// and end markers never break a stretch. single, nonlinear, and dummy
// isolate their row; cyclic rows open and close a ring in pairs, and no
// other value except middle may appear inside one. The NEF standard is
// ambiguous about break: here it closes an open stretch, otherwise it
// starts one. Only unknown linking values and unmatched cyclic pairs
// produce an error.
func SplitSequence(rows []star.Row) ([][]star.Row, error) {
	var result [][]star.Row
	var stretch []star.Row
	inCyclic := false

	for _, row := range rows {
		linking, ok := linkingValue(row)

		if inCyclic && ok && linking != "middle" && linking != "cyclic" {
			return nil, errors.New("sequence contains 'cyclic' residues that do not form a closed, cyclic molecule")
		}

		switch {
		case linking == "cyclic":
			if inCyclic {
				inCyclic = false
				stretch = append(stretch, row)
				result = append(result, stretch)
				stretch = nil
			} else {
				inCyclic = true
				if len(stretch) > 0 {
					result = append(result, stretch)
				}
				stretch = []star.Row{row}
			}

		case linking == "single" || linking == "nonlinear" || linking == "dummy":
			if len(stretch) > 0 {
				result = append(result, stretch)
			}
			result = append(result, []star.Row{row})
			stretch = nil

		case linking == "start":
			if len(stretch) > 0 {
				result = append(result, stretch)
			}
			stretch = []star.Row{row}

		case linking == "end":
			stretch = append(stretch, row)
			result = append(result, stretch)
			stretch = nil

		case linking == "middle" || !ok:
			stretch = append(stretch, row)

		case linking == "break":
			if len(stretch) > 0 {
				stretch = append(stretch, row)
				result = append(result, stretch)
				stretch = nil
			} else {
				stretch = append(stretch, row)
			}

		default:
			return nil, fmt.Errorf("illegal value of nef_sequence.linking: %s", linking)
		}
	}

	if len(stretch) > 0 {
		result = append(result, stretch)
	}
	if inCyclic {
		return nil, errors.New("sequence contains a 'cyclic' residue that is not terminated by a matching 'cyclic' residue")
	}
	return result, nil
}

// linkingValue reads the linking tag of a row. Conversion leaves
// non-numeric cells as UnquotedValue and nulls as nil, so both count.
func linkingValue(row star.Row) (string, bool) {
	v, ok := row["linking"]
	if !ok || v == nil {
		return "", false
	}
	return stringValue(v), true
}
