package operations

// BeachClub: capacity in daybeds, priced by day rate.
// Utilization is turns per day, unbounded above.
func beachClubProfile() profile {
	return profile{
		dailyPriced:    true,
		unitsPerDay:    1,
		occupancyBased: false,
	}
}
