package enum

// AppointmentState represents the lifecycle state of an appointment.
// Appointments are created pending; collected and canceled are terminal.
type AppointmentState string

const (
	AppointmentPending   AppointmentState = "pending"
	AppointmentCollected AppointmentState = "collected"
	AppointmentCanceled  AppointmentState = "canceled"
)

// Valid reports whether s is a known state
func (s AppointmentState) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentCollected, AppointmentCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined out of s
func (s AppointmentState) Terminal() bool {
	return s == AppointmentCollected || s == AppointmentCanceled
}
