package handlers

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/bookdragons/storefront/internal/repository"
)

// DefaultDepth expands relations one level unless ?depth= says otherwise
const DefaultDepth = 1

var wherePattern = regexp.MustCompile(`^where\[([A-Za-z]+)\]\[([A-Za-z]+)\]$`)

// listQuery is the parsed form of ?where[field][op]=...&limit=&depth=
type listQuery struct {
	Where map[string][]string
	Limit int
	Depth int
	// MatchNone is set by an in condition with an empty list
	MatchNone bool
}

// parseListQuery reads where conditions, limit and depth. Fields not in
// allowed are rejected. "equals" takes one value, "in" a comma separated
// list; several conditions on one field are merged. An empty in list
// matches nothing.
func parseListQuery(values url.Values, allowed ...string) (*listQuery, error) {
	q := &listQuery{Where: map[string][]string{}, Depth: DefaultDepth}

	for key, vals := range values {
		switch key {
		case "limit":
			n, err := strconv.Atoi(vals[0])
			if err != nil {
				return nil, fmt.Errorf("limit must be a number")
			}
			q.Limit = n
			continue
		case "depth":
			n, err := strconv.Atoi(vals[0])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("depth must be a non-negative number")
			}
			q.Depth = n
			continue
		}

		m := wherePattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		field, op := m[1], m[2]
		if !contains(allowed, field) {
			return nil, fmt.Errorf("unknown filter field: %s", field)
		}

		switch op {
		case "equals":
			q.Where[field] = append(q.Where[field], vals...)
		case "in":
			n := len(q.Where[field])
			for _, v := range vals {
				for _, part := range strings.Split(v, ",") {
					if part = strings.TrimSpace(part); part != "" {
						q.Where[field] = append(q.Where[field], part)
					}
				}
			}
			if len(q.Where[field]) == n {
				q.MatchNone = true
			}
		default:
			return nil, fmt.Errorf("unsupported filter operator: %s", op)
		}
	}

	q.Limit = repository.NormalizeLimit(q.Limit)
	return q, nil
}

func (q *listQuery) int64s(field string) ([]int64, error) {
	var out []int64
	for _, v := range q.Where[field] {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be numeric, got %q", field, v)
		}
		out = append(out, n)
	}
	return out, nil
}

func (q *listQuery) boolean(field string) (*bool, error) {
	vals := q.Where[field]
	if len(vals) == 0 {
		return nil, nil
	}
	b, err := strconv.ParseBool(vals[0])
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false, got %q", field, vals[0])
	}
	return &b, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
