package report

import (
	"strconv"

	"github.com/thechupa55/CP/internal/model"
	"github.com/thechupa55/CP/internal/parser"
	"github.com/thechupa55/CP/internal/service/aggregate"
	"github.com/thechupa55/CP/internal/service/cache"
	"github.com/thechupa55/CP/internal/service/indicator"
	"github.com/thechupa55/CP/internal/service/mapping"
	"github.com/thechupa55/CP/internal/service/quality"
	"github.com/thechupa55/CP/internal/service/session"
)

// Builder orchestrates one refresh: it snapshots the session, runs every
// engine over the snapshot, and assembles the full report set in a fixed
// render order. Sub-reports are computed independently; a missing mapping
// degrades only the sub-reports that need it, never the refresh as a
// whole. Every computation is memoized by (file identity, mapping
// fingerprint, report name), so a re-render without an underlying change
// costs nothing.
type Builder struct {
	session *session.Session
}

// NewBuilder wires a builder to the session it reads from.
func NewBuilder(s *session.Session) *Builder {
	return &Builder{session: s}
}

const (
	reasonNoChildFile = "no child file loaded"
	reasonNoAdultFile = "no adult file loaded"
	reasonNoFile      = "no file loaded"
)

// result is the cached value of one sub-report: its table, or the reason
// it could not be computed.
type result struct {
	Table  *model.AggregateTable
	Reason string
}

// Build computes the complete report set for the current session state.
func (b *Builder) Build() *model.ReportSet {
	v := b.session.Snapshot()
	set := &model.ReportSet{Reports: []*model.Report{}}

	b.indicatorReports(set, v)
	b.structuredReports(set, v)
	b.safeFamiliesReports(set, v)
	b.geographyReports(set, v)
	b.statusReports(set, v)
	b.qualityReports(set, v)
	return set
}

func (b *Builder) indicatorReports(set *model.ReportSet, v session.View) {
	if v.Child == nil && v.Adult == nil {
		set.AddUnavailable("Indicator_Summary", reasonNoFile)
		set.AddUnavailable("Indicator_Monthly", reasonNoFile)
	} else {
		b.combined(set, v, "Indicator_Summary", func() (*model.AggregateTable, error) {
			return indicatorSummary(v)
		})
		b.combined(set, v, "Indicator_Monthly", func() (*model.AggregateTable, error) {
			return indicatorMonthly(v)
		})
	}

	b.child(set, v, "CP_Monthly_By_Gender", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		if _, err := m.Require(model.CPServiceDate); err != nil {
			return nil, err
		}
		return aggregate.MonthlyGender("CP_Monthly_By_Gender",
			mapping.Dates(t, m, model.CPServiceDate),
			mapping.Strings(t, m, model.ChildGender),
			indicator.ChildGenders()), nil
	})
	b.adult(set, v, "Adult_CP_Monthly_By_Gender", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		if _, err := m.Require(model.AdultServiceDate); err != nil {
			return nil, err
		}
		return aggregate.MonthlyGender("Adult_CP_Monthly_By_Gender",
			mapping.Dates(t, m, model.AdultServiceDate),
			mapping.Strings(t, m, model.AdultGender),
			indicator.AdultGenders()), nil
	})
}

func (b *Builder) structuredReports(set *model.ReportSet, v session.View) {
	programs := indicator.StructuredPrograms()
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}

	b.child(set, v, "Structured_Summary", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		return aggregate.StructuredSummary(indicator.StructuredFlags(t, m), len(programs)), nil
	})
	b.child(set, v, "Structured_Per_Program", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		return aggregate.StructuredPerProgram(indicator.StructuredFlags(t, m), names), nil
	})
	b.child(set, v, "Structured_Only_One", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		return aggregate.StructuredOnlyOne(indicator.StructuredFlags(t, m), names), nil
	})
	b.child(set, v, "Structured_Combinations", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		return aggregate.StructuredCombinations(indicator.StructuredFlags(t, m), names), nil
	})
	b.child(set, v, "Structured_Monthly_Gender", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		firsts := indicator.FirstCompletions(t, m)
		genders := mapping.Strings(t, m, model.ChildGender)

		// Only children with a dated first completion enter this pivot;
		// a child who completed nothing is not a first-time completion.
		dates := make([]parser.ParsedDate, 0, len(firsts))
		picked := make([]string, 0, len(firsts))
		for r, fc := range firsts {
			if !fc.Date.OK {
				continue
			}
			dates = append(dates, fc.Date)
			picked = append(picked, genders[r])
		}
		return aggregate.MonthlyGender("Structured_Monthly_Gender", dates, picked, indicator.ChildGenders()), nil
	})
}

func (b *Builder) safeFamiliesReports(set *model.ReportSet, v session.View) {
	b.child(set, v, "Safe_Families_Monthly_Gender", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		return sfMonthly("Safe_Families_Monthly_Gender", t, m,
			model.SFCompleted, model.SFDate, model.ChildGender, indicator.ChildGenders())
	})
	b.child(set, v, "Safe_Families_Summary", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		return sfSummary("Safe_Families_Summary", t, m, model.SFCompleted, model.SFDate)
	})
	b.adult(set, v, "Adult_SF_Monthly_Gender", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		return sfMonthly("Adult_SF_Monthly_Gender", t, m,
			model.AdultSFCompleted, model.AdultSFDate, model.AdultGender, indicator.AdultGenders())
	})
	b.adult(set, v, "Adult_SF_Summary", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		return sfSummary("Adult_SF_Summary", t, m, model.AdultSFCompleted, model.AdultSFDate)
	})
}

func (b *Builder) geographyReports(set *model.ReportSet, v session.View) {
	single := func(name string, field model.LogicalField) {
		b.child(set, v, name, func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
			if _, err := m.Require(field); err != nil {
				return nil, err
			}
			label := labelOf(t.Entity, field)
			return aggregate.ValueCounts(name, label, "Children", mapping.Strings(t, m, field)), nil
		})
	}
	single("Geo_By_Oblast", model.Oblast)
	single("Geo_By_Raion", model.Raion)
	single("Geo_By_Hromada", model.Hromada)
	single("Geo_By_Settlement", model.Settlement)

	group := func(name string, fields ...model.LogicalField) {
		b.child(set, v, name, func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
			labels := make([]string, len(fields))
			columns := make([][]string, len(fields))
			for i, f := range fields {
				if _, err := m.Require(f); err != nil {
					return nil, err
				}
				labels[i] = labelOf(t.Entity, f)
				columns[i] = mapping.Strings(t, m, f)
			}
			return aggregate.GroupCounts(name, labels, columns, "Children"), nil
		})
	}
	group("Geo_Oblast_Raion", model.Oblast, model.Raion)
	group("Geo_Hierarchy_Full", model.Oblast, model.Raion, model.Hromada, model.Settlement)
}

func (b *Builder) statusReports(set *model.ReportSet, v session.View) {
	pair := func(totalName, genderName string, field model.LogicalField) {
		b.child(set, v, totalName, func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
			if _, err := m.Require(field); err != nil {
				return nil, err
			}
			label := labelOf(t.Entity, field)
			return aggregate.ValueCounts(totalName, label, "Children", mapping.Strings(t, m, field)), nil
		})
		b.child(set, v, genderName, func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
			if _, err := m.Require(field); err != nil {
				return nil, err
			}
			label := labelOf(t.Entity, field)
			return aggregate.CategoryGender(genderName, label,
				mapping.Strings(t, m, field),
				mapping.Strings(t, m, model.ChildGender),
				indicator.ChildGenders()), nil
		})
	}
	pair("Disability_Total", "Disability_By_Gender", model.DisabilityStatus)
	pair("IDP_Status_Total", "IDP_Status_By_Gender", model.IDPStatus)
}

func (b *Builder) qualityReports(set *model.ReportSet, v session.View) {
	b.child(set, v, "DQ_Parent_Phone_Conflicts", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		_, table, err := quality.FindConflicts(t, m, model.FullParentName, model.ParentPhone,
			[]model.LogicalField{model.ChildFullName, model.Settlement})
		if err != nil {
			return nil, err
		}
		table.Name = "DQ_Parent_Phone_Conflicts"
		return table, nil
	})
	b.child(set, v, "DQ_Phone_Name_Conflicts", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		_, table, err := quality.FindConflicts(t, m, model.ParentPhone, model.FullParentName,
			[]model.LogicalField{model.ChildFullName, model.Settlement})
		if err != nil {
			return nil, err
		}
		table.Name = "DQ_Phone_Name_Conflicts"
		return table, nil
	})
	b.child(set, v, "DQ_Child_Name_Duplicates", func(t *model.RawTable, m *model.Mapping) (*model.AggregateTable, error) {
		_, table, err := quality.FindDuplicates(t, m, model.ChildFullName,
			[]model.LogicalField{model.Settlement, model.FullParentName, model.ParentPhone, model.ChildDateOfBirth})
		if err != nil {
			return nil, err
		}
		table.Name = "DQ_Child_Name_Duplicates"
		return table, nil
	})
}

// child computes one sub-report over the child table, degrading to an
// unavailable entry when no child file is loaded or a required mapping is
// missing.
func (b *Builder) child(set *model.ReportSet, v session.View, name string, fn func(*model.RawTable, *model.Mapping) (*model.AggregateTable, error)) {
	if v.Child == nil {
		set.AddUnavailable(name, reasonNoChildFile)
		return
	}
	b.memoized(set, name,
		[]string{v.Child.FileID, v.ChildMap.Fingerprint(), name},
		[]string{v.Child.FileID},
		func() (*model.AggregateTable, error) { return fn(v.Child, v.ChildMap) })
}

// adult is the adult-table counterpart of child.
func (b *Builder) adult(set *model.ReportSet, v session.View, name string, fn func(*model.RawTable, *model.Mapping) (*model.AggregateTable, error)) {
	if v.Adult == nil {
		set.AddUnavailable(name, reasonNoAdultFile)
		return
	}
	b.memoized(set, name,
		[]string{v.Adult.FileID, v.AdultMap.Fingerprint(), name},
		[]string{v.Adult.FileID},
		func() (*model.AggregateTable, error) { return fn(v.Adult, v.AdultMap) })
}

// combined computes one sub-report spanning both tables; its cache entry
// is registered under every contributing file identity so that replacing
// either file invalidates it.
func (b *Builder) combined(set *model.ReportSet, v session.View, name string, fn func() (*model.AggregateTable, error)) {
	parts := []string{}
	fileIDs := []string{}
	if v.Child != nil {
		parts = append(parts, v.Child.FileID, v.ChildMap.Fingerprint())
		fileIDs = append(fileIDs, v.Child.FileID)
	}
	if v.Adult != nil {
		parts = append(parts, v.Adult.FileID, v.AdultMap.Fingerprint())
		fileIDs = append(fileIDs, v.Adult.FileID)
	}
	b.memoized(set, name, append(parts, name), fileIDs, fn)
}

func (b *Builder) memoized(set *model.ReportSet, name string, keyParts, fileIDs []string, fn func() (*model.AggregateTable, error)) {
	key := cache.Key(keyParts...)
	value := b.session.Cache().Memoize(key, func() any {
		table, err := fn()
		if err != nil {
			return result{Reason: err.Error()}
		}
		return result{Table: table}
	}, fileIDs...)

	res := value.(result)
	if res.Table != nil {
		set.Add(res.Table)
	} else {
		set.AddUnavailable(name, res.Reason)
	}
}

// indicatorSummary is the headline table: how many rows of each loaded
// table pass the participation rule. A table where no program column
// resolved is a valid zero-evidence state, not an error.
func indicatorSummary(v session.View) (*model.AggregateTable, error) {
	pairs := [][2]string{}
	if v.Child != nil {
		results := indicator.Evaluate(v.Child, v.ChildMap, indicator.ChildCPRule())
		pairs = append(pairs,
			[2]string{"Children with 2+ CP service sessions", strconv.Itoa(indicator.QualifyingCount(results))},
			[2]string{"Child rows", strconv.Itoa(v.Child.RowCount())})
	}
	if v.Adult != nil {
		results := indicator.Evaluate(v.Adult, v.AdultMap, indicator.AdultCPRule())
		pairs = append(pairs,
			[2]string{"Adults with 2+ MHPSS sessions", strconv.Itoa(indicator.QualifyingCount(results))},
			[2]string{"Adult rows", strconv.Itoa(v.Adult.RowCount())})
	}
	return aggregate.MetricTable("Indicator_Summary", pairs...), nil
}

func indicatorMonthly(v session.View) (*model.AggregateTable, error) {
	var childDates []parser.ParsedDate
	var childGenders []string
	if v.Child != nil {
		childDates = mapping.Dates(v.Child, v.ChildMap, model.CPServiceDate)
		childGenders = mapping.Strings(v.Child, v.ChildMap, model.ChildGender)
	}
	var adultDates []parser.ParsedDate
	var adultGenders []string
	if v.Adult != nil {
		adultDates = mapping.Dates(v.Adult, v.AdultMap, model.AdultServiceDate)
		adultGenders = mapping.Strings(v.Adult, v.AdultMap, model.AdultGender)
	}
	return aggregate.IndicatorMonthly(childDates, childGenders, adultDates, adultGenders), nil
}

// sfMonthly pivots completion dates by month and gender, counting only
// rows whose completed flag is set.
func sfMonthly(name string, t *model.RawTable, m *model.Mapping, completed, date, gender model.LogicalField, known []string) (*model.AggregateTable, error) {
	if _, err := m.Require(completed); err != nil {
		return nil, err
	}
	flags := mapping.Flags(t, m, completed)
	dates := mapping.Dates(t, m, date)
	genders := mapping.Strings(t, m, gender)

	picked := make([]parser.ParsedDate, 0, len(flags))
	pickedGenders := make([]string, 0, len(flags))
	for r, done := range flags {
		if !done {
			continue
		}
		picked = append(picked, dates[r])
		pickedGenders = append(pickedGenders, genders[r])
	}
	return aggregate.MonthlyGender(name, picked, pickedGenders, known), nil
}

// sfSummary names the physical columns behind the completion check and
// counts completions, including those whose date did not parse.
func sfSummary(name string, t *model.RawTable, m *model.Mapping, completed, date model.LogicalField) (*model.AggregateTable, error) {
	completedCol, err := m.Require(completed)
	if err != nil {
		return nil, err
	}
	dateCol, _ := m.Column(date)
	if dateCol == "" {
		dateCol = "(not mapped)"
	}

	flags := mapping.Flags(t, m, completed)
	dates := mapping.Dates(t, m, date)
	total, missingDate := 0, 0
	for r, done := range flags {
		if !done {
			continue
		}
		total++
		if !dates[r].OK {
			missingDate++
		}
	}
	return aggregate.MetricTable(name,
		[2]string{"Completed column", completedCol},
		[2]string{"Completion date column", dateCol},
		[2]string{"Completed", strconv.Itoa(total)},
		[2]string{"Completed without date", strconv.Itoa(missingDate)},
	), nil
}

func labelOf(entity model.Entity, field model.LogicalField) string {
	if spec, ok := model.SpecOf(entity, field); ok {
		return spec.Label
	}
	return string(field)
}
