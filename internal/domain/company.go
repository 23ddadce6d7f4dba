package domain

// Column names of the register layout, in input order.
const (
	ColSerial         = "SR No."
	ColName           = "NBFC Name"
	ColRegionalOffice = "Regional Office"
	ColDeposits       = "Whether have CoR for holding/Accepting Public Deposits"
	ColClass          = "Classification"
	ColCIN            = "Corporate Identification Number"
	ColLayer          = "Layer"
	ColAddress        = "Address"
	ColEmail          = "Email ID"
	ColWebsite        = "Official Website"
)

// Columns is the kept input layout. The input carries one more trailing
// placeholder column that is dropped at load.
var Columns = []string{
	ColSerial,
	ColName,
	ColRegionalOffice,
	ColDeposits,
	ColClass,
	ColCIN,
	ColLayer,
	ColAddress,
	ColEmail,
}

// CompanyRecord is one input row. Index is its position among the data rows.
type CompanyRecord struct {
	Index   int
	Fields  []string // len(Columns), in Columns order
	Website string   // empty until resolved
}

func (c CompanyRecord) Name() string {
	return c.Field(ColName)
}

func (c CompanyRecord) Field(col string) string {
	for i, name := range Columns {
		if name == col && i < len(c.Fields) {
			return c.Fields[i]
		}
	}
	return ""
}

// Outcome is the result of one resolution attempt.
type Outcome struct {
	Index   int
	Name    string // sanitized query seed
	Website string // empty when nothing validated
}

func (o Outcome) Found() bool { return o.Website != "" }
