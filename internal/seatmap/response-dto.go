package seatmap

// SeatMapView is the full seat map with the reserved overlay applied
type SeatMapView struct {
	Rows []RowView `json:"rows"`
}

// RowView is a single row rendered in the layout's visual order
type RowView struct {
	Row         int        `json:"row"`
	Zone        string     `json:"zone"`
	VisualOrder []int      `json:"visual_order"`
	Seats       []SeatView `json:"seats"`
}

// SeatView is a single seat with its current sellability
type SeatView struct {
	Code     SeatCode `json:"code"`
	Number   int      `json:"number"`
	Blocked  bool     `json:"blocked"`
	Reserved bool     `json:"reserved"`
}
