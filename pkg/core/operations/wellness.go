package operations

// treatmentSlotsPerDay is the bookable treatment slots per room per day.
const treatmentSlotsPerDay = 8

// Wellness: capacity in treatment rooms, priced per treatment. Utilization
// is the booked share of an 8-slot treatment day, in [0,1]. Prices per
// treatment-day, so revenue scales with days in month.
func wellnessProfile() profile {
	return profile{
		dailyPriced:    true,
		unitsPerDay:    treatmentSlotsPerDay,
		occupancyBased: true,
	}
}
