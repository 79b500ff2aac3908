package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tschuyebuhl/soundex/data"
)

type queryParamsKey struct{}

// QueryParams parses filter, sort and paging parameters of a lookup request into
// the context. Requests without any stay untouched.
func QueryParams(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if params := parseQueryParams(r.URL.Query()); params != nil {
			r = r.WithContext(context.WithValue(r.Context(), queryParamsKey{}, params))
		}
		next.ServeHTTP(w, r)
	})
}

func QueryParamsFromContext(ctx context.Context) *data.QueryParams {
	params, _ := ctx.Value(queryParamsKey{}).(*data.QueryParams)
	return params
}

var matchModes = map[string]data.MatchMode{
	"":                 data.Exact,
	"eq":               data.Exact,
	"exact":            data.Exact,
	"ci":               data.CaseInsensitive,
	"ilike":            data.CaseInsensitive,
	"caseinsensitive":  data.CaseInsensitive,
	"case_insensitive": data.CaseInsensitive,
	"start":            data.Start,
	"prefix":           data.Start,
	"starts_with":      data.Start,
	"end":              data.End,
	"suffix":           data.End,
	"ends_with":        data.End,
	"any":              data.Anywhere,
	"anywhere":         data.Anywhere,
	"contains":         data.Anywhere,
	"sounds":           data.SoundsLike,
	"soundex":          data.SoundsLike,
	"sounds_like":      data.SoundsLike,
	"phonetic":         data.SoundsLike,
}

func parseQueryParams(values url.Values) *data.QueryParams {
	if len(values) == 0 {
		return nil
	}

	var (
		params = &data.QueryParams{Pagination: data.Pagination{Limit: "ALL"}}
		found  bool
	)

	for _, raw := range values["filter"] {
		if cond, ok := parseFilterCondition(raw); ok {
			params.Conditions = append(params.Conditions, cond)
			found = true
		}
	}

	if sort, ok := parseSort(values.Get("sort")); ok {
		params.Sort = sort
		found = true
	}

	if pg, ok := parsePagination(values); ok {
		params.Pagination = pg
		found = true
	}

	if !found {
		return nil
	}
	return params
}

// parseFilterCondition reads "<column>_<mode>=<value>".
func parseFilterCondition(raw string) (data.FilterCondition, bool) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok {
		return data.FilterCondition{}, false
	}
	column, mode := splitColumnAndMode(strings.TrimSpace(key))
	if column == "" {
		return data.FilterCondition{}, false
	}
	return data.FilterCondition{Column: column, Mode: mode, Value: strings.TrimSpace(value)}, true
}

// splitColumnAndMode peels the longest known mode suffix off key. Keys without
// one are exact matches on the whole key.
func splitColumnAndMode(key string) (string, data.MatchMode) {
	for i := len(key) - 1; i > 0; i-- {
		if key[i] != '_' {
			continue
		}
		mode, ok := matchModes[strings.ToLower(key[i+1:])]
		if !ok {
			continue
		}
		if column := strings.TrimSpace(key[:i]); column != "" {
			return column, mode
		}
	}
	return key, data.Exact
}

// parseSort reads "column", "-column", "+column" or "column:asc|desc".
func parseSort(raw string) (data.Sort, bool) {
	raw = strings.TrimSpace(raw)
	sort := data.Sort{Direction: "asc"}
	switch {
	case strings.HasPrefix(raw, "-"):
		sort.Direction = "desc"
		raw = raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}

	column, dir, _ := strings.Cut(raw, ":")
	sort.Column = strings.TrimSpace(column)
	if sort.Column == "" {
		return data.Sort{}, false
	}
	if dir = strings.ToLower(strings.TrimSpace(dir)); dir == "asc" || dir == "desc" {
		sort.Direction = dir
	}
	return sort, true
}

// parsePagination reads limit (or per_page) with offset, or page when the
// limit is numeric.
func parsePagination(values url.Values) (data.Pagination, bool) {
	pg := data.Pagination{Limit: "ALL"}
	found := false

	rawLimit := strings.TrimSpace(values.Get("limit"))
	if rawLimit == "" {
		rawLimit = strings.TrimSpace(values.Get("per_page"))
	}
	limit, numeric := parseCount(rawLimit)
	switch {
	case numeric:
		pg.Limit = limit
		found = true
	case strings.EqualFold(rawLimit, "all"):
		found = true
	}

	if offset, ok := parseCount(values.Get("offset")); ok {
		pg.Offset = offset
		found = true
	} else if page, ok := parseCount(values.Get("page")); ok && page > 0 && numeric {
		pg.Offset = (page - 1) * limit
		found = true
	}
	return pg, found
}

func parseCount(value string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
