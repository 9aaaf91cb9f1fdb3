package dto

// Coordinates use lng/lat to match common web map clients.
type StopRequest struct {
	ID      string   `json:"id" validate:"omitempty,max=64"`
	Name    string   `json:"name" validate:"required,max=200"`
	Address string   `json:"address" validate:"max=500"`
	Lng     *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	Lat     *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
}

type ReplaceStopsRequest struct {
	Stops []StopRequest `json:"stops" validate:"max=25,dive"`
}

// MoveStopRequest relocates a stop; a blank address keeps the current one.
type MoveStopRequest struct {
	Lng     *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	Lat     *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Address string   `json:"address" validate:"max=500"`
}

type StopResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lng     float64 `json:"lng"`
	Lat     float64 `json:"lat"`
}

type ListStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}
