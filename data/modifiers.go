package data

import (
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

// Pagination limits a lookup. A nil Limit, or "ALL", returns every match.
type Pagination struct {
	Limit  any // int64 or "ALL"
	Offset int64
}

type Sort struct {
	Column    string
	Direction string
}

type FilterCondition struct {
	Column string
	Mode   MatchMode
	Value  string
}

type Filter struct {
	Conditions []FilterCondition
}

// QueryParams is a parsed lookup request: which names to match, in which order, which page.
type QueryParams struct {
	Pagination
	Filter
	Sort
}

type MatchMode int

const (
	Exact MatchMode = iota
	CaseInsensitive
	Anywhere
	Start
	End
	// SoundsLike compares the column, which holds stored codes, with Code(value).
	SoundsLike
)

// Mod turns the condition into a WHERE clause.
func (c FilterCondition) Mod() bob.Mod[*dialect.SelectQuery] {
	col := psql.Quote(c.Column)
	switch c.Mode {
	case Exact:
		return sm.Where(col.EQ(psql.Arg(c.Value)))
	case Start:
		return sm.Where(col.ILike(psql.Arg(c.Value + "%")))
	case End:
		return sm.Where(col.ILike(psql.Arg("%" + c.Value)))
	case Anywhere:
		return sm.Where(col.ILike(psql.Arg("%" + c.Value + "%")))
	case SoundsLike:
		return sm.Where(col.EQ(psql.Arg(Code(c.Value))))
	default:
		return sm.Where(col.ILike(psql.Arg(c.Value)))
	}
}

func (f Filter) Mods() []bob.Mod[*dialect.SelectQuery] {
	mods := make([]bob.Mod[*dialect.SelectQuery], 0, len(f.Conditions))
	for _, c := range f.Conditions {
		mods = append(mods, c.Mod())
	}
	return mods
}

func (s Sort) Mods() []bob.Mod[*dialect.SelectQuery] {
	if s.Column == "" {
		return nil
	}
	if s.Direction == "desc" {
		return []bob.Mod[*dialect.SelectQuery]{sm.OrderBy(psql.Quote(s.Column)).Desc()}
	}
	return []bob.Mod[*dialect.SelectQuery]{sm.OrderBy(psql.Quote(s.Column)).Asc()}
}

func (p Pagination) Mods() []bob.Mod[*dialect.SelectQuery] {
	var mods []bob.Mod[*dialect.SelectQuery]
	if limit, ok := p.Limit.(int64); ok {
		mods = append(mods, sm.Limit(limit))
	}
	if p.Offset > 0 {
		mods = append(mods, sm.Offset(p.Offset))
	}
	return mods
}

// Mods returns every clause of the lookup. A nil receiver adds nothing.
func (qp *QueryParams) Mods() []bob.Mod[*dialect.SelectQuery] {
	if qp == nil {
		return nil
	}
	mods := qp.Filter.Mods()
	mods = append(mods, qp.Sort.Mods()...)
	return append(mods, qp.Pagination.Mods()...)
}

func (qp QueryParams) String() string {
	return fmt.Sprintf("QueryParams: [Sort: %s %s] [Filter: %v] [Page: offset %d, limit %v]",
		qp.Column, qp.Direction, qp.Conditions, qp.Offset, qp.Limit)
}

func (c FilterCondition) String() string {
	return fmt.Sprintf("FilterCondition: [Column: %s, MatchMode: %s, Value: %s]", c.Column, c.Mode, c.Value)
}

var matchModeNames = [...]string{
	Exact:           "Exact",
	CaseInsensitive: "CaseInsensitive",
	Anywhere:        "Anywhere",
	Start:           "Start",
	End:             "End",
	SoundsLike:      "SoundsLike",
}

func (m MatchMode) String() string {
	if m < 0 || int(m) >= len(matchModeNames) {
		return "Unknown"
	}
	return matchModeNames[m]
}
