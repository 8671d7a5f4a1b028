package dto

type BookingReceipt struct {
	RequestID string `json:"request_id"`
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"checkin"`
	CheckOut  string `json:"checkout"`
	Nights    int    `json:"nights"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
}
