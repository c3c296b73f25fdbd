package model

// Department is an undergraduate department id.
type Department string

const (
	DepartmentHumanity   Department = "humanity"
	DepartmentCulture    Department = "culture"
	DepartmentJapanese   Department = "japanese"
	DepartmentSocial     Department = "social"
	DepartmentCis        Department = "cis"
	DepartmentEducation  Department = "education"
	DepartmentPsyche     Department = "psyche"
	DepartmentDisability Department = "disability"
	DepartmentBiol       Department = "biol"
	DepartmentBres       Department = "bres"
	DepartmentEarth      Department = "earth"
	DepartmentMath       Department = "math"
	DepartmentPhys       Department = "phys"
	DepartmentChem       Department = "chem"
	DepartmentCoens      Department = "coens"
	DepartmentEsys       Department = "esys"
	DepartmentPandps     Department = "pandps"
	DepartmentCoins      Department = "coins"
	DepartmentMast       Department = "mast"
	DepartmentKlis       Department = "klis"
	DepartmentMed        Department = "med"
	DepartmentNurse      Department = "nurse"
	DepartmentMs         Department = "ms"
	DepartmentAandd      Department = "aandd"
	DepartmentSport      Department = "sport"
)

// School is a school id grouping several departments.
type School string

const (
	SchoolHumcul School = "humcul"
	SchoolSocint School = "socint"
	SchoolHuman  School = "human"
	SchoolLife   School = "life"
	SchoolSse    School = "sse"
	SchoolInfo   School = "info"
	SchoolMed    School = "med"
	SchoolAandd  School = "aandd"
	SchoolSport  School = "sport"
)

// Graduate is a graduate program id.
type Graduate string

const (
	GraduateEducation Graduate = "education"
	GraduateHass      Graduate = "hass"
	GraduateGabs      Graduate = "gabs"
	GraduatePas       Graduate = "pas"
	GraduateSie       Graduate = "sie"
	GraduateLife      Graduate = "life"
	GraduateChs       Graduate = "chs"
	GraduateSlis      Graduate = "slis"
	GraduateGlobal    Graduate = "global"
)

// DepartmentsOfSchool expands a school into its member departments.
func DepartmentsOfSchool(s School) []Department {
	switch s {
	case SchoolHumcul:
		return []Department{DepartmentHumanity, DepartmentCulture, DepartmentJapanese}
	case SchoolSocint:
		return []Department{DepartmentSocial, DepartmentCis}
	case SchoolHuman:
		return []Department{DepartmentEducation, DepartmentPsyche, DepartmentDisability}
	case SchoolLife:
		return []Department{DepartmentBiol, DepartmentBres, DepartmentEarth}
	case SchoolSse:
		return []Department{DepartmentMath, DepartmentPhys, DepartmentChem, DepartmentCoens, DepartmentEsys, DepartmentPandps}
	case SchoolInfo:
		return []Department{DepartmentCoins, DepartmentMast, DepartmentKlis}
	case SchoolMed:
		return []Department{DepartmentMed, DepartmentNurse, DepartmentMs}
	case SchoolAandd:
		return []Department{DepartmentAandd}
	case SchoolSport:
		return []Department{DepartmentSport}
	}
	return nil
}

// UniversityKind discriminates the three affiliation shapes.
type UniversityKind int

const (
	// UniversityUndergraduate has a department and no graduate program.
	UniversityUndergraduate UniversityKind = iota
	// UniversityGraduateContinuing has both a department and a graduate
	// program (undergraduate degree from this campus).
	UniversityGraduateContinuing
	// UniversityGraduateTransfer has a graduate program only.
	UniversityGraduateTransfer
)

// University is a closed three-variant affiliation. Construct it only
// through NewUniversity so the variant invariant always holds.
type University struct {
	kind       UniversityKind
	department Department
	graduate   Graduate
}

// NewUniversity builds the affiliation from its nullable storage shape.
// A value with neither department nor graduate program is rejected.
func NewUniversity(department *Department, graduate *Graduate) (University, error) {
	switch {
	case department != nil && graduate != nil:
		return University{kind: UniversityGraduateContinuing, department: *department, graduate: *graduate}, nil
	case department != nil:
		return University{kind: UniversityUndergraduate, department: *department}, nil
	case graduate != nil:
		return University{kind: UniversityGraduateTransfer, graduate: *graduate}, nil
	}
	return University{}, ErrInvalidUniversity
}

// Kind reports which variant this affiliation is.
func (u University) Kind() UniversityKind { return u.kind }

// Department returns the department and whether this variant has one.
func (u University) Department() (Department, bool) {
	if u.kind == UniversityGraduateTransfer {
		return "", false
	}
	return u.department, true
}

// Graduate returns the graduate program and whether this variant has one.
func (u University) Graduate() (Graduate, bool) {
	if u.kind == UniversityUndergraduate {
		return "", false
	}
	return u.graduate, true
}

// Flatten converts back to the nullable pair persisted in the store.
func (u University) Flatten() (department *Department, graduate *Graduate) {
	if d, ok := u.Department(); ok {
		department = &d
	}
	if g, ok := u.Graduate(); ok {
		graduate = &g
	}
	return department, graduate
}
