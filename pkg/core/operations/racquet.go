package operations

// playableCourtHours is the bookable hours per court per day.
const playableCourtHours = 14

// Racquet: capacity in courts, priced per court-hour. Utilization is the
// booked share of a 14-playable-hour day, in [0,1].
func racquetProfile() profile {
	return profile{
		dailyPriced:    true,
		unitsPerDay:    playableCourtHours,
		occupancyBased: true,
	}
}
