package scheduling

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Status{"", "rescheduled", "PENDING", "booked"} {
		if ValidStatus(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
