package report

import (
	"time"

	"sic/internal/domain/record"
)

// duplicateWindow matches the intake-side advisory check: two records with
// the same contract number count as duplicates only when strictly less than
// one hour apart.
const duplicateWindow = time.Hour

// MarkDuplicates annotates a result set with is_duplicate. A record is a
// duplicate iff another record shares its contract number and was created
// within the window. The annotation is presentation-time only and the input
// order is preserved.
func MarkDuplicates(records []record.ServiceRecord) []record.ServiceRecord {
	out := make([]record.ServiceRecord, len(records))
	copy(out, records)

	groups := make(map[string][]int, len(out))
	for i := range out {
		key := out[i].ContractNumber
		groups[key] = append(groups[key], i)
	}

	for _, idxs := range groups {
		if len(idxs) < 2 {
			out[idxs[0]].IsDuplicate = false
			continue
		}
		for _, i := range idxs {
			dup := false
			for _, j := range idxs {
				if i == j {
					continue
				}
				d := out[i].CreatedAt.Sub(out[j].CreatedAt)
				if d < 0 {
					d = -d
				}
				if d < duplicateWindow {
					dup = true
					break
				}
			}
			out[i].IsDuplicate = dup
		}
	}

	return out
}
