package operations

// Hotel: capacity in keys, priced by ADR per occupied key-night.
// Utilization is occupancy in [0,1]. Revenue mix typically splits the
// total across rooms/F&B/other department lines.
func hotelProfile() profile {
	return profile{
		dailyPriced:    true,
		unitsPerDay:    1,
		occupancyBased: true,
	}
}
