package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/mediconnect/internal/appointments"
	"github.com/wolfman30/mediconnect/internal/doctors"
	"github.com/wolfman30/mediconnect/internal/forms"
	"github.com/wolfman30/mediconnect/internal/http/middleware"
	"github.com/wolfman30/mediconnect/internal/notify"
	"github.com/wolfman30/mediconnect/internal/patients"
	"github.com/wolfman30/mediconnect/pkg/logging"
)

// PageData is what every page template receives.
type PageData struct {
	Page          string
	Title         string
	CSRFToken     string
	Notifications []notify.Notification
	Data          any
}

type option struct {
	Value string
	Label string
}

type feature struct {
	Title string
	Body  string
}

var landingFeatures = []feature{
	{Title: "Qualified Doctors", Body: "Board-certified physicians with years of experience in their specializations."},
	{Title: "Easy Scheduling", Body: "Book appointments online at your convenience, 24/7 availability."},
	{Title: "Secure & Private", Body: "Your medical information is protected with industry-standard security."},
}

type landingView struct {
	Features []feature
}

type doctorsView struct {
	Query      doctors.Query
	Result     doctors.Result
	Options    []doctors.FilterOption
	LiveSearch bool
}

type appointmentView struct {
	Form            appointments.Form
	ErrorField      string
	MinDate         string
	TimeSlots       []option
	Specializations []option
}

type patientView struct {
	Form       patients.Form
	ErrorField string
	Genders    []patients.Gender
}

// Options configures the page handler.
type Options struct {
	Renderer     *Renderer
	Doctors      *doctors.Handler
	Appointments *appointments.Handler
	Patients     *patients.Handler
	LiveSearch   bool
	Logger       *logging.Logger
}

// Handler serves the server-rendered screens.
type Handler struct {
	renderer     *Renderer
	doctors      *doctors.Handler
	appointments *appointments.Handler
	patients     *patients.Handler
	liveSearch   bool
	logger       *logging.Logger
	now          func() time.Time
}

// NewHandler creates the page handler.
func NewHandler(opts Options) (*Handler, error) {
	if opts.Renderer == nil {
		return nil, errors.New("web: renderer is required")
	}
	if opts.Doctors == nil || opts.Appointments == nil || opts.Patients == nil {
		return nil, errors.New("web: doctors, appointments and patients handlers are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		renderer:     opts.Renderer,
		doctors:      opts.Doctors,
		appointments: opts.Appointments,
		patients:     opts.Patients,
		liveSearch:   opts.LiveSearch,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// Routes mounts the screens. Navigation never carries query-string state;
// filters and forms travel in POST bodies.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Landing)
	r.Get("/doctors", h.Doctors)
	r.Post("/doctors", h.FilterDoctors)
	r.Post("/doctors/{id}/talk", h.TalkToDoctor)
	if h.liveSearch {
		r.Get("/doctors/live", h.LiveSearch)
	}
	r.Get("/appointment", h.Appointment)
	r.Post("/appointment", h.SubmitAppointment)
	r.Get("/patient-details", h.PatientDetails)
	r.Post("/patient-details", h.SubmitPatientDetails)
}

// Landing renders the static home screen.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.page(r, PageLanding, "Home", landingView{Features: landingFeatures}, nil))
}

// Doctors renders the full directory. Each visit starts from the default filter.
func (h *Handler) Doctors(w http.ResponseWriter, r *http.Request) {
	h.renderDoctors(w, r, http.StatusOK, doctors.DefaultQuery(), nil)
}

// FilterDoctors applies the submitted search and specialization, or clears
// both when action=clear.
func (h *Handler) FilterDoctors(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	q := queryFromForm(r)
	if r.PostFormValue("action") == "clear" {
		q.Clear()
	}
	h.renderDoctors(w, r, http.StatusOK, q, nil)
}

// TalkToDoctor raises the placeholder consultation notice and re-renders the
// directory with the filters the patient had applied.
func (h *Handler) TalkToDoctor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid doctor id", http.StatusBadRequest)
		return
	}
	doc, err := h.doctors.Directory().Get(id)
	if errors.Is(err, doctors.ErrDoctorNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("failed to look up doctor", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	rec := notify.NewRecorder()
	h.doctors.Announce(r.Context(), doc, rec)
	h.renderDoctors(w, r, http.StatusOK, queryFromForm(r), rec.Notifications())
}

// Appointment renders an empty booking form.
func (h *Handler) Appointment(w http.ResponseWriter, r *http.Request) {
	h.renderAppointment(w, r, http.StatusOK, appointments.Form{}, forms.Outcome{})
}

// SubmitAppointment validates a booking. Rejected forms come back with the
// patient's values intact; accepted forms come back empty.
func (h *Handler) SubmitAppointment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	form := appointments.Form{
		FullName:       r.PostFormValue("fullName"),
		Email:          r.PostFormValue("email"),
		Phone:          r.PostFormValue("phone"),
		Date:           r.PostFormValue("date"),
		Time:           r.PostFormValue("time"),
		Specialization: r.PostFormValue("specialization"),
		Symptoms:       r.PostFormValue("symptoms"),
	}
	rec := notify.NewRecorder()
	out, next := h.appointments.Book(r.Context(), form, rec)
	h.renderAppointment(w, r, out.StatusCode(), next, out, rec.Notifications()...)
}

// PatientDetails renders an empty patient-details form.
func (h *Handler) PatientDetails(w http.ResponseWriter, r *http.Request) {
	h.renderPatient(w, r, http.StatusOK, patients.Form{}, forms.Outcome{})
}

// SubmitPatientDetails validates and acknowledges the patient's details.
func (h *Handler) SubmitPatientDetails(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	form := patients.Form{
		FullName:           r.PostFormValue("fullName"),
		Age:                r.PostFormValue("age"),
		Gender:             r.PostFormValue("gender"),
		Address:            r.PostFormValue("address"),
		MedicalHistory:     r.PostFormValue("medicalHistory"),
		CurrentMedications: r.PostFormValue("currentMedications"),
	}
	rec := notify.NewRecorder()
	out, next := h.patients.Save(r.Context(), form, rec)
	h.renderPatient(w, r, out.StatusCode(), next, out, rec.Notifications()...)
}

func (h *Handler) renderDoctors(w http.ResponseWriter, r *http.Request, status int, q doctors.Query, notes []notify.Notification) {
	res := h.doctors.Search(r.Context(), q, "page")
	h.render(w, status, h.page(r, PageDoctors, "Our Doctors", h.doctorsView(res), notes))
}

func (h *Handler) doctorsView(res doctors.Result) doctorsView {
	return doctorsView{
		Query:      res.Query,
		Result:     res,
		Options:    doctors.FilterOptions(),
		LiveSearch: h.liveSearch,
	}
}

func (h *Handler) renderAppointment(w http.ResponseWriter, r *http.Request, status int, form appointments.Form, out forms.Outcome, notes ...notify.Notification) {
	view := appointmentView{
		Form:            form,
		ErrorField:      errorField(out),
		MinDate:         h.now().Format("2006-01-02"),
		TimeSlots:       stringOptions(appointments.TimeSlots()),
		Specializations: stringOptions(appointments.Specializations()),
	}
	h.render(w, status, h.page(r, PageAppointment, "Book Appointment", view, notes))
}

func (h *Handler) renderPatient(w http.ResponseWriter, r *http.Request, status int, form patients.Form, out forms.Outcome, notes ...notify.Notification) {
	view := patientView{
		Form:       form,
		ErrorField: errorField(out),
		Genders:    patients.Genders(),
	}
	h.render(w, status, h.page(r, PagePatientDetails, "Patient Details", view, notes))
}

func (h *Handler) page(r *http.Request, name, title string, data any, notes []notify.Notification) PageData {
	return PageData{
		Page:          name,
		Title:         title,
		CSRFToken:     middleware.CSRFTokenFromContext(r.Context()),
		Notifications: notes,
		Data:          data,
	}
}

func queryFromForm(r *http.Request) doctors.Query {
	q := doctors.DefaultQuery()
	q.Search = r.PostFormValue("search")
	if spec := r.PostFormValue("specialization"); spec != "" {
		q.Specialization = spec
	}
	return q
}

func errorField(out forms.Outcome) string {
	if out.Err == nil {
		return ""
	}
	return out.Err.Field
}

func stringOptions(values []string) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: v, Label: v})
	}
	return out
}
