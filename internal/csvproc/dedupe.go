package csvproc

import "strings"

// cemeteryTerms mark records that should never receive mail. The
// misspelling is deliberate; it shows up in real county data.
var cemeteryTerms = []string{"cemetery", "cemetary", "memorial", "church"}

func isCemetery(name string) bool {
	name = strings.ToLower(name)
	for _, term := range cemeteryTerms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

// AddressKey builds the comparison key used for deduplication:
// case-folded and whitespace-collapsed address, city and state plus the
// zip code. Owner names are ignored so co-owned parcels collapse to one
// letter per mailbox.
func AddressKey(r Record) string {
	return strings.Join([]string{
		normalize(r.Address),
		normalize(r.City),
		normalize(r.State),
		strings.TrimSpace(r.Zip),
	}, "|")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Deduplicate keeps the first record per address key and counts the
// rest. It is idempotent: running it on its own output removes nothing.
func Deduplicate(records []Record) ([]Record, int) {
	seen := make(map[string]bool, len(records))
	kept := records[:0:0]
	duplicates := 0

	for _, r := range records {
		key := AddressKey(r)
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true
		kept = append(kept, r)
	}
	return kept, duplicates
}
