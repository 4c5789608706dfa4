package operations

// Restaurant: capacity in covers (seats), priced by average check.
// Utilization is turns per day (seat turnover), unbounded above.
func restaurantProfile() profile {
	return profile{
		dailyPriced:    true,
		unitsPerDay:    1,
		occupancyBased: false,
	}
}
