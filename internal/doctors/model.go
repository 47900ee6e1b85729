package doctors

// Specialization is a medical-practice category.
type Specialization string

const (
	GeneralMedicine Specialization = "General Medicine"
	Cardiology      Specialization = "Cardiology"
	Dermatology     Specialization = "Dermatology"
	Neurology       Specialization = "Neurology"
	Orthopedics     Specialization = "Orthopedics"
	Pediatrics      Specialization = "Pediatrics"
	Gynecology      Specialization = "Gynecology"
	Psychiatry      Specialization = "Psychiatry"
)

// AllSpecializations is the directory filter value that matches every doctor.
const AllSpecializations = "all"

// Doctor is one read-only directory entry.
type Doctor struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Specialization Specialization `json:"specialization"`
	Bio            string         `json:"bio"`
	Availability   string         `json:"availability"`
	Rating         float64        `json:"rating"`
	Location       string         `json:"location"`
	Avatar         string         `json:"avatar"`
}

// FilterOption is one entry of the directory's specialization select.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions lists the directory filter choices, "all" first.
func FilterOptions() []FilterOption {
	opts := []FilterOption{{Value: AllSpecializations, Label: "All Specializations"}}
	for _, s := range []Specialization{GeneralMedicine, Cardiology, Dermatology, Neurology, Orthopedics, Pediatrics} {
		opts = append(opts, FilterOption{Value: string(s), Label: string(s)})
	}
	return opts
}

// BookingSpecializations lists what a patient may pick when booking. It is
// wider than the directory and is not checked against it.
func BookingSpecializations() []Specialization {
	return []Specialization{
		GeneralMedicine,
		Cardiology,
		Dermatology,
		Neurology,
		Orthopedics,
		Pediatrics,
		Gynecology,
		Psychiatry,
	}
}
