package entity

// Job represents a posting row in the `jobs` table. Salary and equity are
// nullable; equity is a NUMERIC column and travels as a decimal string
// (e.g. "0.05") to avoid float drift.
type Job struct {
	ID            int64   `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	Salary        *int    `db:"salary" json:"salary"`
	Equity        *string `db:"equity" json:"equity"`
	CompanyHandle string  `db:"company_handle" json:"companyHandle"`
}

// EquityOp is the comparison applied to the equity column when filtering.
// It is a closed enumeration: the repository switches on it and emits the
// literal token, so no caller-controlled text ever reaches the SQL.
type EquityOp int

const (
	// EquityAny matches every job; equity is non-negative so `>= 0`
	// filters nothing out.
	EquityAny EquityOp = iota
	// EquityPositive matches jobs offering equity (`> 0`).
	EquityPositive
	// EquityNone matches jobs offering no equity (`= 0`).
	EquityNone
)

// Filter holds the resolved job listing predicate.
type Filter struct {
	MinSalary int
	Equity    EquityOp
}
