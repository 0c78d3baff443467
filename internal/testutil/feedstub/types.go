package feedstub

import "encoding/xml"

// Event mirrors one <event> element of the active-incidents document.
type Event struct {
	PrimeStreet  string `json:"prime_street" xml:"prime_street"`
	CrossStreets string `json:"cross_streets,omitempty" xml:"cross_streets,omitempty"`
	DispatchTime string `json:"dispatch_time" xml:"dispatch_time"`
	EventNum     string `json:"event_num" xml:"event_num"`
	EventType    string `json:"event_type" xml:"event_type"`
	AlarmLevel   string `json:"alarm_lev" xml:"alarm_lev"`
	Beat         string `json:"beat,omitempty" xml:"beat,omitempty"`
	UnitsDisp    string `json:"units_disp" xml:"units_disp"`
}

type ActiveIncidents struct {
	XMLName   xml.Name `xml:"tfs_active_incidents"`
	UpdatedAt string   `xml:"update_from_db_time"`
	Events    []Event  `xml:"event"`
}

type SeedRequest struct {
	Events []Event `json:"events"`
}

type FailRequest struct {
	Count      int `json:"count"`
	StatusCode int `json:"status_code"`
}
