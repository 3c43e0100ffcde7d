package source

import "sort"

// OffsetList maps decoded-string offsets back to source-file offsets, so
// diagnostics raised against escaped content (e.g. a JSON-escaped
// translation string) can recover the original byte position. Entries must
// be appended in increasing decoded-offset order; lookups binary-search the
// nearest entry at or before the queried offset.
type OffsetList struct {
	entries []offsetPair
}

type offsetPair struct {
	decoded int
	source  int
}

// Add records that decodedOffset in the decoded string corresponds to
// sourceOffset in the original file. Callers must call this in increasing
// decodedOffset order; it is the caller's responsibility since the decode
// pass naturally produces offsets in order.
func (l *OffsetList) Add(decodedOffset, sourceOffset int) {
	l.entries = append(l.entries, offsetPair{decoded: decodedOffset, source: sourceOffset})
}

// Lookup maps a decoded-string offset back to its originating source
// offset, using the nearest recorded pair at or before decodedOffset and
// carrying forward the delta. Returns decodedOffset unchanged if no entries
// have been recorded yet.
func (l *OffsetList) Lookup(decodedOffset int) int {
	if len(l.entries) == 0 {
		return decodedOffset
	}
	i := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].decoded > decodedOffset
	})
	if i == 0 {
		return decodedOffset
	}
	p := l.entries[i-1]
	return p.source + (decodedOffset - p.decoded)
}
