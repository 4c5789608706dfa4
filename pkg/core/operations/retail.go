package operations

// Retail: capacity in sqm, priced by rent per sqm per month.
// Utilization is the occupied share in [0,1].
func retailProfile() profile {
	return profile{
		dailyPriced:    false,
		unitsPerDay:    1,
		occupancyBased: true,
	}
}
