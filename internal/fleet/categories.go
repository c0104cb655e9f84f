package fleet

import "strings"

// categoryRule maps sheet-name keywords onto an expense category. Rules are
// evaluated in order against the lowercased sheet name; the first rule with
// a matching keyword wins.
type categoryRule struct {
	keywords []string
	category string
}

var categoryRules = []categoryRule{
	{[]string{"loan"}, CategoryLoan},
	{[]string{"insur"}, CategoryInsurance},
	{[]string{"eld"}, CategoryIFTA},
	{[]string{"reg"}, CategoryPlates},
	{[]string{"prepass"}, CategoryPrepass},
	{[]string{"office"}, CategoryOffice},
	{[]string{"repair", "maint"}, CategoryRepairs},
	{[]string{"fuel"}, CategoryFuel},
	{[]string{"toll"}, CategoryTolls},
	{[]string{"driver"}, CategoryFactoring},
}

// CategoryForSheet resolves the expense category for a sheet name. The
// second return is false when no rule matches, in which case the sheet
// contributes nothing to the summary.
func CategoryForSheet(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category, true
			}
		}
	}
	return "", false
}

// FindColumn returns the index of the first column whose name contains any
// of the given keywords, case-insensitive. Used to sniff the truck
// identifier column ("truck"/"unit") and the amount column
// ("amount"/"cost") of an expense sheet.
func FindColumn(columns []string, keywords ...string) (int, bool) {
	for i, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i, true
			}
		}
	}
	return -1, false
}
