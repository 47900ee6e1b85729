package patients

import (
	"math"
	"strconv"
	"strings"

	"github.com/wolfman30/mediconnect/internal/forms"
	"github.com/wolfman30/mediconnect/internal/notify"
)

// FormName labels patient-details submissions in logs and metrics.
const FormName = "patient_details"

const (
	minAge = 0
	maxAge = 150
)

// Gender is one of the selectable gender options.
type Gender struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var genders = []Gender{
	{Value: "male", Label: "Male"},
	{Value: "female", Label: "Female"},
	{Value: "other", Label: "Other"},
	{Value: "prefer-not-to-say", Label: "Prefer not to say"},
}

// Genders returns the gender options in display order.
func Genders() []Gender {
	out := make([]Gender, len(genders))
	copy(out, genders)
	return out
}

func isGender(v string) bool {
	for _, g := range genders {
		if g.Value == v {
			return true
		}
	}
	return false
}

// Form is the patient-details form.
type Form struct {
	FullName           string `json:"fullName"`
	Age                string `json:"age"`
	Gender             string `json:"gender"`
	Address            string `json:"address"`
	MedicalHistory     string `json:"medicalHistory"`
	CurrentMedications string `json:"currentMedications"`
}

func (Form) Name() string { return FormName }

// Validate checks full name, age, gender and address in that order.
// Medical history and medications are free text and never rejected.
func (f Form) Validate() error {
	if strings.TrimSpace(f.FullName) == "" {
		return forms.Invalid("fullName", "Please enter your full name")
	}
	if !validAge(f.Age) {
		return forms.Invalid("age", "Please enter a valid age")
	}
	if f.Gender == "" || !isGender(f.Gender) {
		return forms.Invalid("gender", "Please select your gender")
	}
	if strings.TrimSpace(f.Address) == "" {
		return forms.Invalid("address", "Please enter your address")
	}
	return nil
}

// Confirmation is the same for every accepted submission.
func (Form) Confirmation() notify.Notification {
	return notify.New(
		"Patient Details Saved Successfully!",
		"Your information has been securely stored in our system.",
		notify.SeveritySuccess,
	)
}

func validAge(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	age, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(age) || math.IsInf(age, 0) {
		return false
	}
	return age >= minAge && age <= maxAge
}

var _ forms.Form = Form{}
