package indicator

import (
	"github.com/thechupa55/CP/internal/model"
)

// Program is one session-count column contributing to a rule.
type Program struct {
	Name  string
	Field model.LogicalField
}

// Rule is a named membership predicate: the sum of session counts across
// its program list compared against a threshold. Rules are static,
// versioned data; they are not derived at runtime.
type Rule struct {
	Name      string
	Entity    model.Entity
	Programs  []Program
	Threshold float64
}

// ChildCPRule is the child-protection participation indicator: at least
// two sessions in total across every CP service column.
func ChildCPRule() Rule {
	return Rule{
		Name:      "cp_services_child",
		Entity:    model.EntityChild,
		Threshold: 2,
		Programs: []Program{
			{Name: "TEAM_UP", Field: model.TeamUpSessions},
			{Name: "HEART", Field: model.HeartSessions},
			{Name: "CYR", Field: model.CYRSessions},
			{Name: "ISMF", Field: model.ISMFSessions},
			{Name: "SF + JSWP", Field: model.SFSessions},
			{Name: "Recreational Activity", Field: model.RecreationSessions},
			{Name: "Informal Education Activity", Field: model.InfEduSessions},
			{Name: "SEL", Field: model.SELSessions},
			{Name: "SOCR", Field: model.SOCRSessions},
			{Name: "EORE", Field: model.EORESessions},
			{Name: "GBV", Field: model.GBVSessions},
			{Name: "LA", Field: model.LASessions},
		},
	}
}

// AdultCPRule is the adult MHPSS participation indicator: at least two
// sessions across Safe Families and the unstructured MHPSS columns.
func AdultCPRule() Rule {
	return Rule{
		Name:      "cp_services_adult",
		Entity:    model.EntityAdult,
		Threshold: 2,
		Programs: []Program{
			{Name: "Safe Families", Field: model.AdultSFSessions},
			{Name: "Unstructured MHPSS Activities", Field: model.AdultUnstructured},
			{Name: "Unstructured MHPSS Activities Youth Resilience", Field: model.AdultUnstructuredYouth},
		},
	}
}

// StructuredProgram pairs a structured program's completion flag with its
// completion date.
type StructuredProgram struct {
	Name      string
	Completed model.LogicalField
	Date      model.LogicalField
}

// StructuredPrograms is the fixed list of structured child programs.
func StructuredPrograms() []StructuredProgram {
	return []StructuredProgram{
		{Name: "TEAM_UP", Completed: model.TeamUpCompleted, Date: model.TeamUpDate},
		{Name: "HEART", Completed: model.HeartCompleted, Date: model.HeartDate},
		{Name: "CYR", Completed: model.CYRCompleted, Date: model.CYRDate},
		{Name: "ISMF", Completed: model.ISMFCompleted, Date: model.ISMFDate},
	}
}
