package operations

// Villas: capacity in rentable units, priced by nightly rate.
// Utilization is occupancy in [0,1].
func villasProfile() profile {
	return profile{
		dailyPriced:    true,
		unitsPerDay:    1,
		occupancyBased: true,
	}
}
