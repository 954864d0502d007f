package model

// LogicalField is a fixed semantic data role, independent of any
// particular file's column naming.
type LogicalField string

// Child table fields.
const (
	ChildFullName      LogicalField = "child_full_name"
	ChildGender        LogicalField = "child_gender"
	ChildDateOfBirth   LogicalField = "child_date_of_birth"
	FullParentName     LogicalField = "full_parent_name"
	ParentPhone        LogicalField = "parent_phone"
	Oblast             LogicalField = "oblast"
	Raion              LogicalField = "raion"
	Hromada            LogicalField = "hromada"
	Settlement         LogicalField = "settlement"
	DisabilityStatus   LogicalField = "disability_status"
	IDPStatus          LogicalField = "idp_status"
	CPServiceDate      LogicalField = "cp_service_date"
	TeamUpCompleted    LogicalField = "team_up_completed"
	TeamUpDate         LogicalField = "team_up_date"
	HeartCompleted     LogicalField = "heart_completed"
	HeartDate          LogicalField = "heart_date"
	CYRCompleted       LogicalField = "cyr_completed"
	CYRDate            LogicalField = "cyr_date"
	ISMFCompleted      LogicalField = "ismf_completed"
	ISMFDate           LogicalField = "ismf_date"
	SFCompleted        LogicalField = "sf_completed"
	SFDate             LogicalField = "sf_date"
	TeamUpSessions     LogicalField = "team_up_sessions"
	HeartSessions      LogicalField = "heart_sessions"
	CYRSessions        LogicalField = "cyr_sessions"
	ISMFSessions       LogicalField = "ismf_sessions"
	SFSessions         LogicalField = "sf_sessions"
	RecreationSessions LogicalField = "recreation_sessions"
	InfEduSessions     LogicalField = "inf_edu_sessions"
	SELSessions        LogicalField = "sel_sessions"
	SOCRSessions       LogicalField = "socr_sessions"
	EORESessions       LogicalField = "eore_sessions"
	GBVSessions        LogicalField = "gbv_sessions"
	LASessions         LogicalField = "la_sessions"
)

// Adult table fields.
const (
	AdultFullName          LogicalField = "adult_full_name"
	AdultGender            LogicalField = "adult_gender"
	AdultServiceDate       LogicalField = "adult_service_date"
	AdultSFSessions        LogicalField = "adult_sf_sessions"
	AdultUnstructured      LogicalField = "adult_unstructured_sessions"
	AdultUnstructuredYouth LogicalField = "adult_unstructured_youth_sessions"
	AdultSFCompleted       LogicalField = "adult_sf_completed"
	AdultSFDate            LogicalField = "adult_sf_date"
)

// FieldKind describes how a field's raw values are materialized.
type FieldKind int

const (
	KindText FieldKind = iota
	KindDate
	KindCount
	KindFlag
)

// FieldSpec declares how one logical field resolves against a physical
// schema: aliases are tried in order (order encodes preference), then the
// spreadsheet column letter, then the field stays Unset.
type FieldSpec struct {
	Field    LogicalField
	Kind     FieldKind
	Label    string
	Aliases  []string
	Letter   string
	Required bool
}

// childFieldSpecs is the versioned alias table for child record exports.
// Letters follow the program's reference export layout.
var childFieldSpecs = []FieldSpec{
	{Field: ChildFullName, Kind: KindText, Label: "Child Full Name", Aliases: []string{"Child Full Name", "Child Name", "Name of the child"}, Letter: "O", Required: true},
	{Field: ChildGender, Kind: KindText, Label: "Gender", Aliases: []string{"Gender", "Sex"}, Letter: "U", Required: true},
	{Field: ChildDateOfBirth, Kind: KindDate, Label: "Date of birth", Aliases: []string{"Date of birth", "DOB", "Birth date"}, Letter: "P"},
	{Field: FullParentName, Kind: KindText, Label: "Full Parent Name", Aliases: []string{"Full Parent Name", "Parent Name", "Caregiver Name"}, Letter: "K"},
	{Field: ParentPhone, Kind: KindText, Label: "Parents phone", Aliases: []string{"Parents phone", "Parent phone", "Phone"}, Letter: "L"},
	{Field: Oblast, Kind: KindText, Label: "Oblast", Aliases: []string{"Oblast"}},
	{Field: Raion, Kind: KindText, Label: "Raion", Aliases: []string{"Raion", "Rayon"}},
	{Field: Hromada, Kind: KindText, Label: "Hromada", Aliases: []string{"Hromada"}},
	{Field: Settlement, Kind: KindText, Label: "Settlement", Aliases: []string{"Settlement", "City/Village"}, Letter: "G"},
	{Field: DisabilityStatus, Kind: KindText, Label: "Disability status", Aliases: []string{"Disability status", "Disability"}},
	{Field: IDPStatus, Kind: KindText, Label: "Status", Aliases: []string{"Status", "IDP Status"}},
	{Field: CPServiceDate, Kind: KindDate, Label: "Date of CP service", Aliases: []string{"Date of CP service", "CP Attendance Date", "Date of attendance", "Service date"}},

	{Field: TeamUpCompleted, Kind: KindFlag, Label: "TEAM_UP Completed", Aliases: []string{"TEAM_UP Completed"}},
	{Field: TeamUpDate, Kind: KindDate, Label: "TEAM_UP Completed Date", Aliases: []string{"TEAM_UP Completed (12) Date", "TEAM_UP Completed Date"}},
	{Field: HeartCompleted, Kind: KindFlag, Label: "HEART Completed", Aliases: []string{"HEART Completed"}},
	{Field: HeartDate, Kind: KindDate, Label: "HEART Completed Date", Aliases: []string{"HEART Completed (10) Date", "HEART Completed Date"}},
	{Field: CYRCompleted, Kind: KindFlag, Label: "CYR Completed", Aliases: []string{"CYR Completed"}},
	{Field: CYRDate, Kind: KindDate, Label: "CYR Completed Date", Aliases: []string{"CYR Completed (10) Date", "CYR Completed Date"}},
	{Field: ISMFCompleted, Kind: KindFlag, Label: "ISMF Completed", Aliases: []string{"ISMF Completed"}},
	{Field: ISMFDate, Kind: KindDate, Label: "ISMF Completed Date", Aliases: []string{"ISMF Completed (10) Date", "ISMF Completed Date"}},
	{Field: SFCompleted, Kind: KindFlag, Label: "SF + JSWP Completed", Aliases: []string{"SF + JSWP Completed (5)", "SF + JSWP Completed"}, Letter: "BA"},
	{Field: SFDate, Kind: KindDate, Label: "SF + JSWP Completed Date", Aliases: []string{"SF + JSWP Completed (5) Date", "SF + JSWP Completed Date"}, Letter: "BB"},

	{Field: TeamUpSessions, Kind: KindCount, Label: "TEAM_UP", Aliases: []string{"TEAM_UP"}, Letter: "AL"},
	{Field: HeartSessions, Kind: KindCount, Label: "HEART", Aliases: []string{"HEART"}, Letter: "AO"},
	{Field: CYRSessions, Kind: KindCount, Label: "CYR", Aliases: []string{"CYR"}, Letter: "AR"},
	{Field: ISMFSessions, Kind: KindCount, Label: "ISMF", Aliases: []string{"ISMF"}, Letter: "AU"},
	{Field: SFSessions, Kind: KindCount, Label: "SF + JSWP", Aliases: []string{"SF + JSWP"}, Letter: "AZ"},
	{Field: RecreationSessions, Kind: KindCount, Label: "Recreational Activity", Aliases: []string{"Recreational Activity"}, Letter: "BC"},
	{Field: InfEduSessions, Kind: KindCount, Label: "Informal Education Activity", Aliases: []string{"Informal Education Activity"}, Letter: "BD"},
	{Field: SELSessions, Kind: KindCount, Label: "SEL", Aliases: []string{"SEL"}, Letter: "BE"},
	{Field: SOCRSessions, Kind: KindCount, Label: "SOCR", Aliases: []string{"SOCR"}, Letter: "BF"},
	{Field: EORESessions, Kind: KindCount, Label: "EORE", Aliases: []string{"EORE"}, Letter: "BG"},
	{Field: GBVSessions, Kind: KindCount, Label: "GBV", Aliases: []string{"GBV"}, Letter: "BH"},
	{Field: LASessions, Kind: KindCount, Label: "LA", Aliases: []string{"LA"}, Letter: "BI"},
}

// adultFieldSpecs is the versioned alias table for adult record exports.
var adultFieldSpecs = []FieldSpec{
	{Field: AdultFullName, Kind: KindText, Label: "Full Name", Aliases: []string{"Full Name", "Name"}, Letter: "M", Required: true},
	{Field: AdultGender, Kind: KindText, Label: "Gender", Aliases: []string{"Gender", "Sex"}, Required: true},
	{Field: AdultServiceDate, Kind: KindDate, Label: "Date of service", Aliases: []string{"Date of service", "Service date", "Date of attendance"}},
	{Field: AdultSFSessions, Kind: KindCount, Label: "Safe Families", Aliases: []string{"Safe Families"}},
	{Field: AdultUnstructured, Kind: KindCount, Label: "Unstructured MHPSS Activities", Aliases: []string{"Unstructured MHPSS Activities"}, Letter: "AF"},
	// "Youth Resilience" is the compatibility label older exports use for
	// the youth variant of unstructured MHPSS activities.
	{Field: AdultUnstructuredYouth, Kind: KindCount, Label: "Unstructured MHPSS Activities Youth Resilience", Aliases: []string{"Unstructured MHPSS Activities Youth Resilience", "Youth Resilience"}},
	{Field: AdultSFCompleted, Kind: KindFlag, Label: "Safe Families Completed", Aliases: []string{"Safe Families Completed", "SF Completed"}},
	{Field: AdultSFDate, Kind: KindDate, Label: "Safe Families Completed Date", Aliases: []string{"Safe Families Completed Date", "SF Completed Date"}},
}

// FieldSpecs returns the alias table for an entity type.
func FieldSpecs(entity Entity) []FieldSpec {
	switch entity {
	case EntityChild:
		return childFieldSpecs
	case EntityAdult:
		return adultFieldSpecs
	}
	return nil
}

// SpecOf looks up one field's spec within its entity table.
func SpecOf(entity Entity, field LogicalField) (FieldSpec, bool) {
	for _, spec := range FieldSpecs(entity) {
		if spec.Field == field {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
