package dataprep

// UnmappedPolicy says what Apply does with a value that has no table entry.
type UnmappedPolicy int

const (
	// Passthrough keeps unmapped values unchanged. This silently turns an
	// unexpected source value into its own singleton category instead of
	// failing loudly or bucketing it into a catch-all; maintainers extending
	// a table should be aware of it.
	Passthrough UnmappedPolicy = iota
	// Reject reports unmapped values to the caller.
	Reject
)

// RecodeTable maps raw categorical values of one column onto coarser
// canonical buckets. Tables are fixed at construction and never mutated.
type RecodeTable struct {
	Column  string
	Policy  UnmappedPolicy
	mapping map[string]string
}

// NewRecodeTable builds an immutable table for column with the given policy.
func NewRecodeTable(column string, policy UnmappedPolicy, mapping map[string]string) RecodeTable {
	m := make(map[string]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return RecodeTable{Column: column, Policy: policy, mapping: m}
}

// Apply recodes every value in vals. Under Passthrough the returned slice of
// unmapped originals is nil; under Reject it lists each value (once per
// occurrence) that had no entry, and the caller decides what to do.
func (t RecodeTable) Apply(vals []string) (out []string, unmapped []string) {
	out = make([]string, len(vals))
	for i, v := range vals {
		if bucket, ok := t.mapping[v]; ok {
			out[i] = bucket
			continue
		}
		out[i] = v
		if t.Policy == Reject {
			unmapped = append(unmapped, v)
		}
	}
	return out, unmapped
}

// Lookup returns the bucket for one raw value and whether it was mapped.
func (t RecodeTable) Lookup(v string) (string, bool) {
	bucket, ok := t.mapping[v]
	if !ok {
		return v, false
	}
	return bucket, true
}

// The bucket definitions follow the course handout: high-cardinality census
// categoricals are collapsed so that the trained model and its explanations
// stay legible. Values absent from a table (e.g. "Private") pass through.

// EmployerTable collapses workclass into government/self-employed/not-working
// buckets.
var EmployerTable = NewRecodeTable("workclass", Passthrough, map[string]string{
	"Federal-gov":      "Federal-Govt",
	"Local-gov":        "Other-Govt",
	"State-gov":        "Other-Govt",
	"Self-emp-inc":     "Self-Employed",
	"Self-emp-not-inc": "Self-Employed",
	"Never-worked":     "Not-Working",
	"Without-pay":      "Not-Working",
})

// EducationTable folds the sixteen attainment levels into seven.
var EducationTable = NewRecodeTable("education", Passthrough, map[string]string{
	"Preschool":    "Dropout",
	"1st-4th":      "Dropout",
	"5th-6th":      "Dropout",
	"7th-8th":      "Dropout",
	"9th":          "Dropout",
	"10th":         "Dropout",
	"11th":         "Dropout",
	"12th":         "Dropout",
	"HS-grad":      "HS-Graduate",
	"Some-college": "HS-Graduate",
	"Assoc-acdm":   "Associates",
	"Assoc-voc":    "Associates",
	"Bachelors":    "Bachelors",
	"Masters":      "Masters",
	"Doctorate":    "Doctorate",
	"Prof-school":  "Prof-School",
})

// MaritalTable distinguishes married/not-married/never-married/widowed.
var MaritalTable = NewRecodeTable("marital_status", Passthrough, map[string]string{
	"Never-married":         "Never-Married",
	"Married-AF-spouse":     "Married",
	"Married-civ-spouse":    "Married",
	"Married-spouse-absent": "Not-Married",
	"Separated":             "Not-Married",
	"Divorced":              "Not-Married",
	"Widowed":               "Widowed",
})

// OccupationTable groups occupations into collar/service buckets.
var OccupationTable = NewRecodeTable("occupation", Passthrough, map[string]string{
	"Adm-clerical":      "Admin",
	"Armed-Forces":      "Military",
	"Craft-repair":      "Blue-Collar",
	"Exec-managerial":   "White-Collar",
	"Farming-fishing":   "Blue-Collar",
	"Handlers-cleaners": "Blue-Collar",
	"Machine-op-inspct": "Blue-Collar",
	"Transport-moving":  "Blue-Collar",
	"Other-service":     "Service",
	"Priv-house-serv":   "Service",
	"Prof-specialty":    "Professional",
	"Protective-serv":   "Other-Occupations",
	"Tech-support":      "Other-Occupations",
})

// CountryTable groups native countries into regions.
var CountryTable = NewRecodeTable("country", Passthrough, map[string]string{
	"Cambodia":                   "SE-Asia",
	"Canada":                     "British-Commonwealth",
	"China":                      "China",
	"Columbia":                   "South-America",
	"Cuba":                       "Other",
	"Dominican-Republic":         "Latin-America",
	"Ecuador":                    "South-America",
	"El-Salvador":                "South-America",
	"England":                    "British-Commonwealth",
	"France":                     "Euro_1",
	"Germany":                    "Euro_1",
	"Greece":                     "Euro_2",
	"Guatemala":                  "Latin-America",
	"Haiti":                      "Latin-America",
	"Holand-Netherlands":         "Euro_1",
	"Honduras":                   "Latin-America",
	"Hong":                       "China",
	"Hungary":                    "Euro_2",
	"India":                      "British-Commonwealth",
	"Iran":                       "Other",
	"Ireland":                    "British-Commonwealth",
	"Italy":                      "Euro_1",
	"Jamaica":                    "Latin-America",
	"Japan":                      "Other",
	"Laos":                       "SE-Asia",
	"Mexico":                     "Latin-America",
	"Nicaragua":                  "Latin-America",
	"Outlying-US(Guam-USVI-etc)": "Latin-America",
	"Peru":                       "South-America",
	"Philippines":                "SE-Asia",
	"Poland":                     "Euro_2",
	"Portugal":                   "Euro_2",
	"Puerto-Rico":                "Latin-America",
	"Scotland":                   "British-Commonwealth",
	"South":                      "Euro_2",
	"Taiwan":                     "China",
	"Thailand":                   "SE-Asia",
	"Trinadad&Tobago":            "Latin-America",
	"Vietnam":                    "SE-Asia",
	"Yugoslavia":                 "Euro_2",
})

// RaceTable is an identity mapping over the observed race values. It has no
// effect today and exists only so every recoded column is driven by a table.
var RaceTable = NewRecodeTable("race", Passthrough, map[string]string{
	"White":              "White",
	"Black":              "Black",
	"Amer-Indian-Eskimo": "Amer-Indian-Eskimo",
	"Asian-Pac-Islander": "Asian-Pac-Islander",
	"Other":              "Other",
})

// IncomeTable renames the label tokens: ">50K" contains a character some
// model libraries treat as special, so both levels get plain names.
var IncomeTable = NewRecodeTable("income", Passthrough, map[string]string{
	">50K":   "Above",
	"<=50K":  "Below",
	">50K.":  "Above",
	"<=50K.": "Below",
})
