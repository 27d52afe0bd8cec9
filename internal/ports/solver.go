package ports

import "context"

// SolveRequest is the input contract of the external VRPTW solver: a
// travel-time matrix in minutes, pickup/delivery node pairs, a demand vector,
// minute-offset time windows and vehicle parameters. The core only builds
// this structure; solving is opaque.
type SolveRequest struct {
	TimeMatrix        [][]int  `json:"time_matrix"`
	PickupsDeliveries [][2]int `json:"pickups_deliveries"`
	Demands           []int    `json:"demands"`
	TimeWindows       [][2]int `json:"time_windows"`
	NumVehicles       int      `json:"num_vehicles"`
	VehicleCapacity   int      `json:"vehicle_capacity"`
	MaxRouteTime      int      `json:"max_route_time"`
	DepotIndex        int      `json:"depot_index"`
}

// SolveStop is one visited node in a solver route.
type SolveStop struct {
	NodeIndex          int `json:"node_index"`
	ArrivalTimeMinutes int `json:"arrival_time_minutes"`
	LoadOnVehicle      int `json:"load_on_vehicle"`
}

// SolveRoute is one vehicle's stop sequence.
type SolveRoute struct {
	VehicleID             int         `json:"vehicle_id"`
	TotalRouteTimeMinutes int         `json:"total_route_time_minutes"`
	Stops                 []SolveStop `json:"stops"`
}

// Solution is the solver's answer. SolutionFound false with a message is a
// normal outcome, not an error.
type Solution struct {
	Routes        []SolveRoute `json:"routes"`
	SolutionFound bool         `json:"solution_found"`
	Message       string       `json:"message,omitempty"`
}

// Contract for the external numeric VRPTW solver. Consumed, never
// implemented, by this service.
type Solver interface {
	Solve(ctx context.Context, req SolveRequest) (Solution, error)
}
