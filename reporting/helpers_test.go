package reporting_test

import (
	"github.com/proago/crm-engine/compensation"
	"github.com/proago/crm-engine/generic"
)

func score(n int) *generic.Counter {
	c := generic.Counter(n)
	return &c
}

func rowKey(n int) *int { return &n }

// shift returns a D2D rookie record with the default 6 hours.
func shift(id, date string, sc, box2 int) compensation.ShiftRecord {
	return compensation.ShiftRecord{
		RecruiterID: generic.RecruiterID(id),
		Date:        date,
		ShiftType:   compensation.ShiftD2D,
		Score:       score(sc),
		Box2Full:    generic.Counter(box2),
	}
}

func roster() compensation.Roster {
	return compensation.Roster{
		{ID: "ana", Name: "Ana", Role: compensation.RoleRookie},
		{ID: "ben", Name: "Ben", Role: compensation.RolePoolCaptain},
		{ID: "cleo", Name: "Cleo", Role: compensation.RoleRookie, IsInactive: true},
	}
}
