package appointments

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/wolfman30/mediconnect/internal/doctors"
	"github.com/wolfman30/mediconnect/internal/forms"
	"github.com/wolfman30/mediconnect/internal/notify"
)

// FormName labels appointment submissions in logs and metrics.
const FormName = "appointment"

const minPhoneDigits = 10

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Bookable half-hour slots. Nothing is offered between 11:30 AM and 2:00 PM.
var timeSlots = []string{
	"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM", "4:00 PM", "4:30 PM", "5:00 PM",
}

// TimeSlots returns the selectable appointment times.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// Form is the appointment booking form.
type Form struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Specialization string `json:"specialization"`
	Symptoms       string `json:"symptoms"`
}

func (Form) Name() string { return FormName }

// Validate checks the required fields in display order and stops at the first
// failure. Symptoms are optional.
func (f Form) Validate() error {
	if strings.TrimSpace(f.FullName) == "" {
		return forms.Invalid("fullName", "Please enter your full name")
	}
	if strings.TrimSpace(f.Email) == "" || !emailPattern.MatchString(f.Email) {
		return forms.Invalid("email", "Please enter a valid email address")
	}
	if strings.TrimSpace(f.Phone) == "" || countDigits(f.Phone) < minPhoneDigits {
		return forms.Invalid("phone", "Please enter a valid phone number")
	}
	// The date picker only offers today onwards.
	if f.Date == "" {
		return forms.Invalid("date", "Please select a preferred date")
	}
	if f.Time == "" || !slices.Contains(timeSlots, f.Time) {
		return forms.Invalid("time", "Please select a preferred time")
	}
	if f.Specialization == "" || !slices.Contains(Specializations(), f.Specialization) {
		return forms.Invalid("specialization", "Please select a doctor specialization")
	}
	return nil
}

// Confirmation embeds the chosen date and time verbatim.
func (f Form) Confirmation() notify.Notification {
	return notify.New(
		"Appointment Booked Successfully!",
		fmt.Sprintf("Your appointment has been scheduled for %s at %s. We'll send you a confirmation email shortly.", f.Date, f.Time),
		notify.SeveritySuccess,
	)
}

// Specializations lists the choices offered by the booking form.
func Specializations() []string {
	specs := doctors.BookingSpecializations()
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = string(s)
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

var _ forms.Form = Form{}
