package models

// Bus is a physical vehicle. Deletion is blocked while any trip references it.
type Bus struct {
	ID       int64
	BusNo    string
	BusType  string
	Capacity int
	DriverID *int64
}

// Route is an origin-destination pair with a base fare in cents. Fields may
// be edited, but deletion is blocked while any trip references the route.
type Route struct {
	ID          int64
	Origin      string
	Destination string
	DistanceKM  float64
	BaseFare    int64
	OriginLat   *float64
	OriginLon   *float64
	DestLat     *float64
	DestLon     *float64
	Description string
}

// Driver can be assigned to at most one bus at a time.
type Driver struct {
	ID        int64
	FirstName string
	LastName  string
	ContactNo string
	LicenseNo string
	HiredDate string
}
