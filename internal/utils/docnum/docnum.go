// Package docnum formats and parses document reference numbers like
// "JE-0007". Numbers are zero-padded to four digits and simply grow
// wider past 9999; the numeric part is monotonically increasing per
// (company, series).
package docnum

import (
	"fmt"
	"strconv"
	"strings"
)

const padWidth = 4

// Format composes a reference string from a series prefix and sequence
// number, e.g. Format("JE-", 7) == "JE-0007".
func Format(series string, seq int64) string {
	return fmt.Sprintf("%s%0*d", series, padWidth, seq)
}

// Next returns the sequence number to issue after the highest existing
// one. The first allocation for a new company/series starts at 1.
func Next(maxSeq int64) int64 {
	if maxSeq < 0 {
		maxSeq = 0
	}
	return maxSeq + 1
}

// Parse splits a reference string back into series and sequence. It is
// the inverse of Format for any series ending in a non-digit.
func Parse(entryNo string) (series string, seq int64, err error) {
	i := len(entryNo)
	for i > 0 && entryNo[i-1] >= '0' && entryNo[i-1] <= '9' {
		i--
	}
	digits := entryNo[i:]
	if digits == "" {
		return "", 0, fmt.Errorf("reference %q has no numeric part", entryNo)
	}
	seq, err = strconv.ParseInt(strings.TrimLeft(digits, "0"), 10, 64)
	if err != nil {
		if strings.Trim(digits, "0") == "" {
			return "", 0, fmt.Errorf("reference %q has sequence zero", entryNo)
		}
		return "", 0, fmt.Errorf("reference %q: %w", entryNo, err)
	}
	return entryNo[:i], seq, nil
}
