package model

// Route is a bus line with its ordered stop sequence.  Stop order is
// semantically meaningful: it defines the stop index used by fare
// computation.  Stops are stored in the `routes.stops` column as a JSON
// array and unpacked by the repository.
type Route struct {
	ID    string   `json:"id"`    // routes.id
	Name  string   `json:"name"`  // routes.name
	Stops []string `json:"stops"` // routes.stops (JSON array)
}
