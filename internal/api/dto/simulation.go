package dto

// SimulationCommand is a client message on the simulation stream.
//
//	{"type":"load","stops":[...]}
//	{"type":"play"} {"type":"pause"} {"type":"reset"}
//	{"type":"speed","value":2} {"type":"seek","value":0.5}
type SimulationCommand struct {
	Type  string        `json:"type" validate:"required,oneof=load play pause reset speed seek"`
	Stops []StopRequest `json:"stops" validate:"max=25,dive"`
	Value *float64      `json:"value"`
}

type PositionResponse struct {
	Lng     float64 `json:"lng"`
	Lat     float64 `json:"lat"`
	Bearing float64 `json:"bearing"`
}

// Server messages carry a type of "route", "frame" or "error".
type SimulationRouteMessage struct {
	Type  string        `json:"type"`
	Route RouteResponse `json:"route"`
	// Speeds lists the preset multipliers.
	Speeds []float64 `json:"speeds"`
}

type SimulationFrameMessage struct {
	Type     string           `json:"type"`
	Seq      uint64           `json:"seq"`
	Status   string           `json:"status"`
	Progress float64          `json:"progress"`
	Speed    float64          `json:"speed"`
	Position PositionResponse `json:"position"`
	Traveled [][]float64      `json:"traveled"`
}

type SimulationErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
