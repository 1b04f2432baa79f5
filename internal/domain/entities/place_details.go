package entities

// AccessibilityOptions holds the wheelchair accessibility flags of a place
type AccessibilityOptions struct {
	WheelchairAccessibleEntrance bool `json:"wheelchairAccessibleEntrance"`
	WheelchairAccessibleParking  bool `json:"wheelchairAccessibleParking"`
	WheelchairAccessibleRestroom bool `json:"wheelchairAccessibleRestroom"`
	WheelchairAccessibleSeating  bool `json:"wheelchairAccessibleSeating"`
}

// Count returns how many of the four flags are set
func (o *AccessibilityOptions) Count() int {
	if o == nil {
		return 0
	}
	n := 0
	for _, v := range []bool{
		o.WheelchairAccessibleEntrance,
		o.WheelchairAccessibleParking,
		o.WheelchairAccessibleRestroom,
		o.WheelchairAccessibleSeating,
	} {
		if v {
			n++
		}
	}
	return n
}

// Set turns the option named by an accessibility specification key on or off.
// It reports false for keys that are not accessibility options.
func (o *AccessibilityOptions) Set(key string, v bool) bool {
	switch key {
	case SpecWheelchairAccessibleEntrance:
		o.WheelchairAccessibleEntrance = v
	case SpecWheelchairAccessibleParking:
		o.WheelchairAccessibleParking = v
	case SpecWheelchairAccessibleRestroom:
		o.WheelchairAccessibleRestroom = v
	case SpecWheelchairAccessibleSeating:
		o.WheelchairAccessibleSeating = v
	default:
		return false
	}
	return true
}

// PlaceDetails is the address and accessibility information of a place
type PlaceDetails struct {
	FormattedAddress string                `json:"formattedAddress,omitempty"`
	Accessibility    *AccessibilityOptions `json:"accessibilityOptions,omitempty"`
}
