package summary

import (
	"sort"

	"github.com/ppiankov/dirspectre/internal/browse"
)

// Summary contains high-level aggregation of one browse run.
type Summary struct {
	TotalObjects int            `json:"total_objects"`
	Containers   int            `json:"containers"`
	ByKind       map[string]int `json:"by_kind"`
	Unnamed      int            `json:"unnamed,omitempty"`
}

// Summarize aggregates the browse output: discovered containers plus the
// flattened object records. Pure function.
func Summarize(containers []browse.Node, records []browse.ObjectRecord) Summary {
	s := Summary{
		TotalObjects: len(records),
		Containers:   len(containers),
		ByKind:       make(map[string]int),
	}
	for _, rec := range records {
		kind := rec.Kind
		if kind == "" {
			kind = browse.KindUnknown
		}
		s.ByKind[string(kind)]++
		if rec.Name == "" {
			s.Unnamed++
		}
	}
	return s
}

// Kinds returns the object kinds present in the summary, sorted for stable
// rendering.
func (s Summary) Kinds() []string {
	kinds := make([]string, 0, len(s.ByKind))
	for kind := range s.ByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
