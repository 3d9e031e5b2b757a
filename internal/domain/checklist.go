package domain

import "time"

// Departure checkpoints, in the order a driver walks around the truck
const (
	CheckTires       = "tires"
	CheckLights      = "lights"
	CheckBrakes      = "brakes"
	CheckMirrors     = "mirrors"
	CheckLoadSecured = "load_secured"
	CheckDocuments   = "documents"
	CheckFluids      = "fluids"
	CheckCoupling    = "coupling"
)

var DepartureCheckpoints = []string{
	CheckTires, CheckLights, CheckBrakes, CheckMirrors,
	CheckLoadSecured, CheckDocuments, CheckFluids, CheckCoupling,
}

type DepartureCheck struct {
	ID        string          `json:"id" bson:"_id"`
	UserID    string          `json:"user_id" bson:"user_id"`
	UserName  string          `json:"user_name" bson:"user_name"`
	Checks    map[string]bool `json:"checks" bson:"checks"`
	AllClear  bool            `json:"all_clear" bson:"all_clear"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// NewDepartureCheck keeps only known checkpoints; missing ones count as not done
func NewDepartureCheck(user UserIdentity, checks map[string]bool, at time.Time) *DepartureCheck {
	normalized := make(map[string]bool, len(DepartureCheckpoints))
	allClear := true
	for _, name := range DepartureCheckpoints {
		ok := checks[name]
		normalized[name] = ok
		allClear = allClear && ok
	}

	return &DepartureCheck{
		UserID:    user.ID,
		UserName:  user.DisplayName,
		Checks:    normalized,
		AllClear:  allClear,
		CreatedAt: at,
	}
}

// Pending lists the checkpoints not yet confirmed
func (d *DepartureCheck) Pending() []string {
	var pending []string
	for _, name := range DepartureCheckpoints {
		if !d.Checks[name] {
			pending = append(pending, name)
		}
	}
	return pending
}
