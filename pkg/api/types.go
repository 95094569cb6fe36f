package api

import "time"

// User is the profile the backend derives from a credential.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credential is a bearer token plus the profile it identifies.
type Credential struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Exchange is one chat round trip: the user's message and the
// assistant's response. Immutable once received.
type Exchange struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// MetricType enumerates the kinds of health metrics the backend accepts.
type MetricType string

const (
	MetricWeight        MetricType = "weight"
	MetricBloodPressure MetricType = "blood_pressure"
	MetricGlucose       MetricType = "glucose"
	MetricHeartRate     MetricType = "heart_rate"
)

// Metric is a single recorded health measurement. Values are kept as
// strings because readings like "120/80" are not numeric.
type Metric struct {
	ID         string     `json:"id"`
	MetricType MetricType `json:"metric_type"`
	Value      string     `json:"value"`
	Unit       string     `json:"unit"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// MetricInput is the payload for creating a metric.
type MetricInput struct {
	MetricType MetricType `json:"metric_type"`
	Value      string     `json:"value"`
	Unit       string     `json:"unit"`
	Notes      string     `json:"notes,omitempty"`
}

// ReminderType enumerates reminder kinds.
type ReminderType string

const (
	ReminderMedication  ReminderType = "medication"
	ReminderAppointment ReminderType = "appointment"
)

// Repeat enumerates reminder recurrence.
type Repeat string

const (
	RepeatNone   Repeat = "none"
	RepeatDaily  Repeat = "daily"
	RepeatWeekly Repeat = "weekly"
)

// Reminder is a medication or appointment reminder. Completed flips
// false→true exactly once.
type Reminder struct {
	ID            string       `json:"id"`
	ReminderType  ReminderType `json:"reminder_type"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	ScheduledTime time.Time    `json:"scheduled_time"`
	Repeat        Repeat       `json:"repeat"`
	Completed     bool         `json:"completed"`
	CreatedAt     time.Time    `json:"created_at"`
}

// ReminderInput is the payload for creating a reminder.
type ReminderInput struct {
	ReminderType  ReminderType `json:"reminder_type"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	ScheduledTime time.Time    `json:"scheduled_time"`
	Repeat        Repeat       `json:"repeat"`
}

// SymptomReport is the input to the symptom checker.
type SymptomReport struct {
	Symptoms string `json:"symptoms"`
	Duration string `json:"duration,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// SymptomAnalysis is the AI assessment of a symptom report.
type SymptomAnalysis struct {
	ID        string    `json:"id"`
	Symptoms  string    `json:"symptoms"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means no credential is available.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource returning a fixed token. Useful in tests.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }
