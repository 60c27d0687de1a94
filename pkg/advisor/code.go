package advisor

// Code is the error code for advisor.
type Code int

// Application error codes for advisor.
const (
	Ok Code = 0

	// 1 ~ 99 general advisor error.
	Internal      Code = 1
	Configuration Code = 2

	// 101 ~ 199 changelog graph error.
	DuplicateInclude Code = 101
	IncludeCycle     Code = 102
)

func (c Code) String() string {
	switch c {
	case Ok:
		return "ok"
	case Internal:
		return "internal"
	case Configuration:
		return "configuration"
	case DuplicateInclude:
		return "duplicate-include"
	case IncludeCycle:
		return "include-cycle"
	}
	return "unknown"
}
