package entities

import (
	"encoding/json"
	"fmt"
)

// HoursPerDay is the number of hourly slots in an attendance record
const HoursPerDay = 24

// AttendanceRecord is one day of hourly emergency attendance for an institution
type AttendanceRecord struct {
	InstitutionCode string
	InstitutionName string
	IndicatorCode   string
	IndicatorName   string
	Day             string
	Slots           [HoursPerDay]float64
}

type attendanceInstitution struct {
	InstitutionCode string `json:"institutionCode"`
	InstitutionName string `json:"institutionName"`
}

// UnmarshalJSON reads the feed layout where slots are flat timeSlot1..timeSlot24 fields
func (a *AttendanceRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var inst attendanceInstitution
	if v, ok := raw["institution"]; ok {
		if err := json.Unmarshal(v, &inst); err != nil {
			return fmt.Errorf("institution: %w", err)
		}
	}
	a.InstitutionCode = inst.InstitutionCode
	a.InstitutionName = inst.InstitutionName

	for key, dst := range map[string]*string{
		"indicatorCode": &a.IndicatorCode,
		"indicatorName": &a.IndicatorName,
		"day":           &a.Day,
	} {
		if v, ok := raw[key]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}

	for i := 0; i < HoursPerDay; i++ {
		key := fmt.Sprintf("timeSlot%d", i+1)
		v, ok := raw[key]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, &a.Slots[i]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON writes the same flat layout the feed uses
func (a AttendanceRecord) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"institution": attendanceInstitution{
			InstitutionCode: a.InstitutionCode,
			InstitutionName: a.InstitutionName,
		},
		"indicatorCode": a.IndicatorCode,
		"indicatorName": a.IndicatorName,
		"day":           a.Day,
	}
	for i, v := range a.Slots {
		out[fmt.Sprintf("timeSlot%d", i+1)] = v
	}
	return json.Marshal(out)
}

// CongestionAt returns the attendance at hour relative to the busiest hour of the day,
// on a 0-100 scale. ok is false when the day has no attendance at all.
func (a *AttendanceRecord) CongestionAt(hour int) (level float64, ok bool) {
	if hour < 0 || hour >= HoursPerDay {
		return 0, false
	}
	peak := 0.0
	for _, v := range a.Slots {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return 0, false
	}
	return 100 * a.Slots[hour] / peak, true
}

// Institution is an establishment known to the attendance feed
type Institution struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	IsPediatric bool   `json:"isPediatric"`
}
