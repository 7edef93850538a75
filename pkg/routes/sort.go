package routes

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collators are not safe for concurrent use.
var collatorPool = sync.Pool{
	New: func() any { return collate.New(language.Und) },
}

type sorter struct {
	col *collate.Collator
}

func newSorter() *sorter {
	return &sorter{col: collate.New(language.Und)}
}

func (s *sorter) sort(routes []*Route) {
	slices.SortStableFunc(routes, s.compare)
}

// SortRoutes orders siblings so the most specific route is tried first.
// The sort is stable.
func SortRoutes(routes []*Route) {
	col := collatorPool.Get().(*collate.Collator)
	defer collatorPool.Put(col)
	(&sorter{col: col}).sort(routes)
}

// CompareRoutes returns a negative number when a must be tried before b,
// a positive number when after, and zero when their order is irrelevant.
//
// Empty paths come first, then the root "/". Other paths are compared
// token by token: static < dynamic (":") < catch-all ("*"), the first
// differing class deciding. Ties go to the shorter path, then to locale
// collation; a catch-all at the deciding position always sorts last.
func CompareRoutes(a, b *Route) int {
	col := collatorPool.Get().(*collate.Collator)
	defer collatorPool.Put(col)
	return (&sorter{col: col}).compare(a, b)
}

func (s *sorter) compare(a, b *Route) int {
	if a.Path == b.Path {
		return 0
	}
	if a.Path == "" {
		return -1
	}
	if b.Path == "" {
		return 1
	}
	if a.Path == "/" {
		return -1
	}
	if b.Path == "/" {
		return 1
	}

	ta := strings.Split(a.Path, "/")
	tb := strings.Split(b.Path, "/")

	res := 0
	i := 0
	for ; i < len(ta); i++ {
		if res != 0 {
			break
		}
		res = tokenClass(ta[i]) - tokenClass(tokenAt(tb, i))

		// a reached b's last token with nothing decided
		if i == len(tb)-1 && res == 0 {
			if ta[i] == "*" {
				res = -1
			} else {
				res = s.tieBreak(a.Path, b.Path, len(ta), len(tb))
			}
		}
	}

	if res == 0 {
		if ta[i-1] == "*" && tokenAt(tb, i) != "" {
			res = 1
		} else {
			res = s.tieBreak(a.Path, b.Path, len(ta), len(tb))
		}
	}
	return res
}

func (s *sorter) tieBreak(pa, pb string, la, lb int) int {
	if la == lb {
		return s.col.CompareString(pa, pb)
	}
	return la - lb
}

// tokenClass ranks a pattern token: 0 static, 1 dynamic, 2 catch-all.
func tokenClass(tok string) int {
	if tok == "*" {
		return 2
	}
	if strings.Contains(tok, ":") {
		return 1
	}
	return 0
}

func tokenAt(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}

// IsDynamic reports whether a route path contains a parameter or wildcard.
func IsDynamic(path string) bool {
	return strings.ContainsAny(path, ":*")
}
