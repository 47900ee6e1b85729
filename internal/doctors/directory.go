package doctors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDoctorNotFound is returned when no directory entry has the requested ID.
var ErrDoctorNotFound = errors.New("doctor not found")

const (
	femaleAvatar = "👩‍⚕️"
	maleAvatar   = "👨‍⚕️"
)

var seed = []Doctor{
	{
		ID:             1,
		Name:           "Dr. Sarah Johnson",
		Specialization: Cardiology,
		Bio:            "Experienced cardiologist with 15+ years in cardiovascular medicine. Specializes in preventive cardiology and heart disease management.",
		Availability:   "Mon-Fri: 9:00 AM - 5:00 PM",
		Rating:         4.9,
		Location:       "Heart Center, Floor 3",
		Avatar:         femaleAvatar,
	},
	{
		ID:             2,
		Name:           "Dr. Michael Chen",
		Specialization: Dermatology,
		Bio:            "Board-certified dermatologist focusing on skin cancer prevention, cosmetic dermatology, and advanced skin treatments.",
		Availability:   "Tue-Sat: 10:00 AM - 6:00 PM",
		Rating:         4.8,
		Location:       "Skin Care Center, Floor 2",
		Avatar:         maleAvatar,
	},
	{
		ID:             3,
		Name:           "Dr. Emily Rodriguez",
		Specialization: Pediatrics,
		Bio:            "Pediatric specialist dedicated to providing comprehensive healthcare for children from infancy through adolescence.",
		Availability:   "Mon-Fri: 8:00 AM - 4:00 PM",
		Rating:         4.9,
		Location:       "Children's Wing, Floor 1",
		Avatar:         femaleAvatar,
	},
	{
		ID:             4,
		Name:           "Dr. James Wilson",
		Specialization: Orthopedics,
		Bio:            "Orthopedic surgeon specializing in sports medicine, joint replacement, and minimally invasive procedures.",
		Availability:   "Mon-Thu: 7:00 AM - 3:00 PM",
		Rating:         4.7,
		Location:       "Orthopedic Center, Floor 4",
		Avatar:         maleAvatar,
	},
	{
		ID:             5,
		Name:           "Dr. Lisa Anderson",
		Specialization: Neurology,
		Bio:            "Neurologist with expertise in treating headaches, epilepsy, stroke, and neurodegenerative disorders.",
		Availability:   "Wed-Sun: 9:00 AM - 5:00 PM",
		Rating:         4.8,
		Location:       "Neurology Department, Floor 5",
		Avatar:         femaleAvatar,
	},
	{
		ID:             6,
		Name:           "Dr. Robert Kim",
		Specialization: GeneralMedicine,
		Bio:            "Primary care physician providing comprehensive healthcare, preventive medicine, and chronic disease management.",
		Availability:   "Mon-Fri: 8:00 AM - 6:00 PM",
		Rating:         4.6,
		Location:       "General Practice, Floor 1",
		Avatar:         maleAvatar,
	},
}

// Directory holds the fixed list of doctors. It is safe for concurrent use
// because nothing mutates it after construction.
type Directory struct {
	doctors []Doctor
}

// NewDirectory returns the built-in six-doctor directory.
func NewDirectory() *Directory {
	return NewDirectoryFrom(seed)
}

// NewDirectoryFrom builds a directory over a copy of list, keeping its order.
func NewDirectoryFrom(list []Doctor) *Directory {
	d := &Directory{doctors: make([]Doctor, len(list))}
	copy(d.doctors, list)
	return d
}

// All returns every doctor in source order.
func (d *Directory) All() []Doctor {
	out := make([]Doctor, len(d.doctors))
	copy(out, d.doctors)
	return out
}

// Get looks a doctor up by ID.
func (d *Directory) Get(id int) (Doctor, error) {
	for _, doc := range d.doctors {
		if doc.ID == id {
			return doc, nil
		}
	}
	return Doctor{}, fmt.Errorf("doctors: id %d: %w", id, ErrDoctorNotFound)
}

// Filter returns the doctors matching q, in source order.
func (d *Directory) Filter(q Query) Result {
	q = q.normalized()
	needle := strings.ToLower(q.Search)

	matches := make([]Doctor, 0, len(d.doctors))
	for _, doc := range d.doctors {
		if q.Specialization != AllSpecializations && string(doc.Specialization) != q.Specialization {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(doc.Name), needle) &&
			!strings.Contains(strings.ToLower(string(doc.Specialization)), needle) {
			continue
		}
		matches = append(matches, doc)
	}
	return Result{Query: q, Doctors: matches}
}
