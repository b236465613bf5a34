package reporting

import (
	"slices"
	"strconv"

	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// TOTALS
// =============================================================================

// Totals are unrounded sums over a set of enriched shifts.
type Totals struct {
	Shifts         int
	Score          int
	Box2Full       int
	Box2Discounted int
	Box4Full       int
	Box4Discounted int
	Box2           int
	Box4           int

	Wages  generic.Money
	Income generic.Money
	Bonus  generic.Money
	Profit generic.Money
}

func zeroTotals() Totals {
	return Totals{
		Wages:  generic.ZeroMoney(),
		Income: generic.ZeroMoney(),
		Bonus:  generic.ZeroMoney(),
		Profit: generic.ZeroMoney(),
	}
}

// Summarize sums the shifts. Profit is income - (wages + bonus) of the sums.
func Summarize(shifts []compensation.EnrichedShift) Totals {
	t := zeroTotals()
	for _, s := range shifts {
		t.Shifts++
		t.Score += s.ScoreValue()
		t.Box2Full += s.Box2Full.Int()
		t.Box2Discounted += s.Box2Discounted.Int()
		t.Box4Full += s.Box4Full.Int()
		t.Box4Discounted += s.Box4Discounted.Int()
		t.Box2 += s.Box2()
		t.Box4 += s.Box4()
		t.Wages = t.Wages.Add(s.Wages)
		t.Income = t.Income.Add(s.Income)
		t.Bonus = t.Bonus.Add(s.Bonus)
	}
	t.Profit = t.Income.Sub(t.Wages.Add(t.Bonus))
	return t
}

// Add combines totals of two disjoint sets.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Shifts:         t.Shifts + o.Shifts,
		Score:          t.Score + o.Score,
		Box2Full:       t.Box2Full + o.Box2Full,
		Box2Discounted: t.Box2Discounted + o.Box2Discounted,
		Box4Full:       t.Box4Full + o.Box4Full,
		Box4Discounted: t.Box4Discounted + o.Box4Discounted,
		Box2:           t.Box2 + o.Box2,
		Box4:           t.Box4 + o.Box4,
		Wages:          t.Wages.Add(o.Wages),
		Income:         t.Income.Add(o.Income),
		Bonus:          t.Bonus.Add(o.Bonus),
		Profit:         t.Profit.Add(o.Profit),
	}
}

// Equal compares every field exactly.
func (t Totals) Equal(o Totals) bool {
	return t.Shifts == o.Shifts && t.Score == o.Score &&
		t.Box2Full == o.Box2Full && t.Box2Discounted == o.Box2Discounted &&
		t.Box4Full == o.Box4Full && t.Box4Discounted == o.Box4Discounted &&
		t.Box2 == o.Box2 && t.Box4 == o.Box4 &&
		t.Wages.Equal(o.Wages) && t.Income.Equal(o.Income) &&
		t.Bonus.Equal(o.Bonus) && t.Profit.Equal(o.Profit)
}

// =============================================================================
// BUCKET TREE
// =============================================================================

type Level string

const (
	LevelYear  Level = "year"
	LevelMonth Level = "month"
	LevelWeek  Level = "week"
	LevelDay   Level = "day"
)

// Bucket is one node of the year -> month -> week -> day tree. Only day
// buckets carry Shifts; every bucket's Totals summarize all shifts below it.
type Bucket struct {
	Level    Level
	Key      string
	Label    string
	Totals   Totals
	Children []*Bucket
	Shifts   []compensation.EnrichedShift
}

// Leaves returns the shifts under b in tree order.
func (b *Bucket) Leaves() []compensation.EnrichedShift {
	if b.Level == LevelDay {
		return b.Shifts
	}
	var out []compensation.EnrichedShift
	for _, c := range b.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Find returns the descendant with key, or nil.
func (b *Bucket) Find(key string) *Bucket {
	if b.Key == key {
		return b
	}
	for _, c := range b.Children {
		if found := c.Find(key); found != nil {
			return found
		}
	}
	return nil
}

// Aggregate builds the tree for year from enriched shifts. Shifts outside
// the year are ignored. Keys are ordered lexically and shifts keep input order.
func Aggregate(shifts []compensation.EnrichedShift, year int) *Bucket {
	var selected []compensation.EnrichedShift
	for _, s := range shifts {
		if generic.InYear(s.Date, year) {
			selected = append(selected, s)
		}
	}

	root := &Bucket{Level: LevelYear, Key: strconv.Itoa(year), Label: strconv.Itoa(year)}
	for _, month := range groupBy(selected, func(s compensation.EnrichedShift) string { return generic.MonthKey(s.Date) }) {
		mb := &Bucket{Level: LevelMonth, Key: month.key, Label: monthLabel(month.key)}
		for _, week := range groupBy(month.shifts, func(s compensation.EnrichedShift) string { return generic.WeekKeyISO(s.Date) }) {
			wb := &Bucket{Level: LevelWeek, Key: week.key, Label: weekLabel(week.key)}
			for _, day := range groupBy(week.shifts, func(s compensation.EnrichedShift) string { return s.Date }) {
				wb.Children = append(wb.Children, &Bucket{
					Level:  LevelDay,
					Key:    day.key,
					Label:  day.key,
					Totals: Summarize(day.shifts),
					Shifts: day.shifts,
				})
			}
			wb.Totals = Summarize(week.shifts)
			mb.Children = append(mb.Children, wb)
		}
		mb.Totals = Summarize(month.shifts)
		root.Children = append(root.Children, mb)
	}
	root.Totals = Summarize(selected)
	return root
}

type group struct {
	key    string
	shifts []compensation.EnrichedShift
}

// groupBy partitions shifts by key, groups sorted by key, members in input order.
func groupBy(shifts []compensation.EnrichedShift, keyOf func(compensation.EnrichedShift) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, s := range shifts {
		k := keyOf(s)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].shifts = append(groups[i].shifts, s)
	}
	slices.SortFunc(groups, func(a, b group) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})
	return groups
}

func monthLabel(key string) string {
	m, err := generic.ParseMonth(key)
	if err != nil {
		return key
	}
	return m.Label()
}

func weekLabel(key string) string {
	if len(key) < 2 {
		return key
	}
	return "Week " + key[len(key)-2:]
}

// =============================================================================
// REPORT PIPELINE
// =============================================================================

// Query selects the records of one report.
type Query struct {
	Year   int
	Status Status
}

// BuildReport runs dedup, status filter, enrichment and aggregation in that order.
func BuildReport(records []compensation.ShiftRecord, roster compensation.Roster, settings compensation.Settings, q Query) *Bucket {
	canonical := FilterByStatus(Dedup(records), roster, q.Status)
	return Aggregate(compensation.EnrichAll(canonical, settings), q.Year)
}
