package queries

import (
	"slices"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/fallback"
)

// Merge overlays fallback entries onto the upstream rows. The result
// keeps every upstream record not overridden in its original relative
// order, then net-new fallback records in insertion order. An entry
// whose id collides with an upstream record replaces it in place: the
// overlay is the most recent local intent.
//
// Deterministic and idempotent: merging a merged result with no
// entries reproduces it exactly.
func Merge[T resource.Record](upstreamRecs []T, entries []fallback.Entry) ([]T, map[int64]fallback.Origin, error) {
	if len(entries) == 0 {
		return slices.Clone(upstreamRecs), nil, nil
	}

	overlay := make(map[int64]fallback.Entry, len(entries))
	localIDs := make(map[int64]fallback.Origin, len(entries))
	for _, e := range entries {
		overlay[e.ID] = e
		localIDs[e.ID] = e.Origin
	}

	merged := make([]T, 0, len(upstreamRecs)+len(entries))
	seen := make(map[int64]bool, len(upstreamRecs))
	for _, rec := range upstreamRecs {
		id := rec.RecordID()
		seen[id] = true
		if e, ok := overlay[id]; ok {
			dec, err := fallback.Decode[T](e)
			if err != nil {
				return nil, nil, err
			}
			merged = append(merged, dec)
			continue
		}
		merged = append(merged, rec)
	}

	// entries is in insertion order already (fallback.Store contract).
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		dec, err := fallback.Decode[T](e)
		if err != nil {
			return nil, nil, err
		}
		merged = append(merged, dec)
	}

	return merged, localIDs, nil
}
