package dto

// AdminForm is the admin booking form of one room tab after its picker has
// run. Dates are in the short form.
type AdminForm struct {
	RoomID              string `json:"room_id"`
	CheckIn             string `json:"checkin"`
	CheckOut            string `json:"checkout"`
	CheckInPlaceholder  string `json:"checkin_placeholder"`
	CheckOutPlaceholder string `json:"checkout_placeholder"`
	Nights              int    `json:"nights"`
}
