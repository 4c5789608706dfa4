package operations

// Flex: capacity in desks, priced by desk rate per month.
// Utilization is the occupied share in [0,1].
func flexProfile() profile {
	return profile{
		dailyPriced:    false,
		unitsPerDay:    1,
		occupancyBased: true,
	}
}
