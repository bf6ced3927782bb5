package job

import (
	"strconv"

	"github.com/openboard/service-jobboard-go/internal/job/entity"
	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

// ResolveFilter turns the optional ?minSalary= and ?hasEquity= query
// parameters into a listing predicate. hasEquity "true" keeps only jobs
// with positive equity, "false" only jobs with zero equity; any other
// value (including absent) leaves equity unfiltered. minSalary defaults
// to 0 and must be numeric when present.
func ResolveFilter(minSalary, hasEquity string) (entity.Filter, error) {
	f := entity.Filter{Equity: entity.EquityAny}
	switch hasEquity {
	case "true":
		f.Equity = entity.EquityPositive
	case "false":
		f.Equity = entity.EquityNone
	}
	if minSalary != "" {
		n, err := strconv.Atoi(minSalary)
		if err != nil {
			return entity.Filter{}, apperr.BadRequest("minSalary is not a number: %q", minSalary)
		}
		f.MinSalary = n
	}
	return f, nil
}
