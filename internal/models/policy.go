package models

// Period is one institutional class-period window within a day.
type Period struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// PeriodTable lists the non-overlapping class-period windows per weekday.
// Session blocks must fit entirely inside one window to be valid.
type PeriodTable map[Weekday][]Period

// Recognizes reports whether the interval is fully contained in one
// class-period window for the weekday.
func (t PeriodTable) Recognizes(day Weekday, start, end int) bool {
	for _, p := range t[day] {
		if start >= p.Start && end <= p.End {
			return true
		}
	}
	return false
}

// RegistrarPolicy describes the manual-request pseudo-building.
type RegistrarPolicy struct {
	Name  string    `json:"name"`
	Range OpenRange `json:"range"`
}

// Policy is the external configuration the engine depends on: the
// class-period table, the position roster and the registrar fallback.
type Policy struct {
	Periods   PeriodTable     `json:"periods"`
	Positions []Position      `json:"positions"`
	Registrar RegistrarPolicy `json:"registrar"`
}
