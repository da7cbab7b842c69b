package entities

import "fmt"

type QueryKind string

const (
	QueryByHandle  QueryKind = "by-handle"
	QueryByKeyword QueryKind = "by-keyword"
)

// FetchMethod is the provenance value stamped into raw_data.
func (k QueryKind) FetchMethod() string {
	if k == QueryByHandle {
		return "user_timeline"
	}
	return "keyword_search"
}

type Query struct {
	Kind  QueryKind
	Value string
	Limit int
}

func (q Query) String() string {
	if q.Kind == QueryByHandle {
		return "@" + q.Value
	}
	return fmt.Sprintf("%q", q.Value)
}
