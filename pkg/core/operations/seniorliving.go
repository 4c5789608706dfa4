package operations

// SeniorLiving: capacity in units, priced by monthly fee per occupied
// unit. Utilization is occupancy in [0,1].
func seniorLivingProfile() profile {
	return profile{
		dailyPriced:    false,
		unitsPerDay:    1,
		occupancyBased: true,
	}
}
