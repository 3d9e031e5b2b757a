package domain

type TollSystem string

const (
	TollNone       TollSystem = "NONE"
	TollVignette   TollSystem = "VIGNETTE"
	TollElectronic TollSystem = "ELECTRONIC"
	TollBooth      TollSystem = "TOLL_BOOTH"
	TollMixed      TollSystem = "MIXED"
)

func (t TollSystem) IsValid() bool {
	switch t {
	case TollNone, TollVignette, TollElectronic, TollBooth, TollMixed:
		return true
	}
	return false
}

// SpeedLimits for trucks above 7.5 t, km/h
type SpeedLimits struct {
	Motorway int `json:"motorway" yaml:"motorway" db:"speed_motorway"`
	Rural    int `json:"rural" yaml:"rural" db:"speed_rural"`
	Urban    int `json:"urban" yaml:"urban" db:"speed_urban"`
}

type WinterRules struct {
	TiresRequired  bool   `json:"tires_required" yaml:"tires_required" db:"winter_tires_required"`
	ChainsRequired bool   `json:"chains_required" yaml:"chains_required" db:"snow_chains_required"`
	PeriodStart    string `json:"period_start,omitempty" yaml:"period_start" db:"winter_period_start"`
	PeriodEnd      string `json:"period_end,omitempty" yaml:"period_end" db:"winter_period_end"`
	Condition      string `json:"condition,omitempty" yaml:"condition" db:"winter_condition"`
}

type EmergencyNumbers struct {
	General   string `json:"general" yaml:"general" db:"emergency_general"`
	Police    string `json:"police" yaml:"police" db:"emergency_police"`
	Breakdown string `json:"breakdown,omitempty" yaml:"breakdown" db:"emergency_breakdown"`
}

// CountryInfo - static regulatory reference data for one country
type CountryInfo struct {
	Code                   string           `json:"code" yaml:"code" db:"code"`
	Name                   string           `json:"name" yaml:"name" db:"name"`
	Flag                   string           `json:"flag" yaml:"flag" db:"flag"`
	CallingCode            string           `json:"calling_code" yaml:"calling_code" db:"calling_code"`
	SpeedLimits            SpeedLimits      `json:"speed_limits" yaml:"speed_limits"`
	TollSystem             TollSystem       `json:"toll_system" yaml:"toll_system" db:"toll_system"`
	TollSystemName         string           `json:"toll_system_name,omitempty" yaml:"toll_system_name" db:"toll_system_name"`
	VignetteRequired       bool             `json:"vignette_required" yaml:"vignette_required" db:"vignette_required"`
	ElectronicTollRequired bool             `json:"electronic_toll_required" yaml:"electronic_toll_required" db:"electronic_toll_required"`
	WinterRules            WinterRules      `json:"winter_rules" yaml:"winter_rules"`
	EmergencyNumbers       EmergencyNumbers `json:"emergency_numbers" yaml:"emergency_numbers"`
	DrivingBanInfo         string           `json:"driving_ban_info,omitempty" yaml:"driving_ban_info" db:"driving_ban_info"`
	Currency               string           `json:"currency" yaml:"currency" db:"currency"`
	Language               string           `json:"language" yaml:"language" db:"language"`
	Tips                   []string         `json:"tips" yaml:"tips"`
	CommonIssues           []string         `json:"common_issues" yaml:"common_issues"`
}
