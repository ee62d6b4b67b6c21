package model

import (
	"strconv"
	"sync"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type DocumentStatus string

const (
	StatusPending   DocumentStatus = "pending"
	StatusApproved  DocumentStatus = "approved"
	StatusRevision  DocumentStatus = "revision"
	StatusCompleted DocumentStatus = "completed"
)

// ValidStatus reports whether s is one of the four document statuses.
func ValidStatus(s DocumentStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRevision, StatusCompleted:
		return true
	}
	return false
}

// Weekday tokens used on missions. A mission may also carry no day at all.
const (
	DaySunday    = "domingo"
	DayMonday    = "segunda"
	DayTuesday   = "terca"
	DayWednesday = "quarta"
	DayThursday  = "quinta"
	DayFriday    = "sexta"
	DaySaturday  = "sabado"
)

// UnitAll is the sentinel unit id meaning "applies to every unit".
// It is only ever used on missions.
const UnitAll = "all"

var weekdays = map[string]struct{}{
	DaySunday: {}, DayMonday: {}, DayTuesday: {}, DayWednesday: {},
	DayThursday: {}, DayFriday: {}, DaySaturday: {},
}

func ValidDay(day string) bool {
	_, ok := weekdays[day]
	return ok
}

type Unit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Principal is the currently authenticated actor. It is what the session
// store holds and persists; it is not an account record.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Unit  Unit   `json:"unit"`
}

// ActorRef is a denormalized id+name snapshot of whoever performed an
// action (submittedBy, createdBy, comment author). Later edits to the
// account's name do not propagate to these snapshots.
type ActorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Account is a directory entry managed by admins. Emails are unique across
// active and inactive accounts.
type Account struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Unit      Unit   `json:"unit"`
	CreatedAt string `json:"createdAt"`
	LastLogin string `json:"lastLogin,omitempty"`
	Active    bool   `json:"active"`
}

type Comment struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Date   string   `json:"date"`
	Author ActorRef `json:"author"`
}

type Document struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	UnitID         string         `json:"unitId"`
	UnitName       string         `json:"unitName"`
	DocumentDate   string         `json:"documentDate"`
	SubmissionDate string         `json:"submissionDate"`
	Status         DocumentStatus `json:"status"`
	FileURL        string         `json:"fileUrl"`
	FileName       string         `json:"fileName"`
	FileType       string         `json:"fileType"`
	FileSize       int64          `json:"fileSize"`
	SubmittedBy    ActorRef       `json:"submittedBy"`
	Comments       []Comment      `json:"comments,omitempty"`
}

// Submission is a single user's uploaded report against a mission.
type Submission struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	FileName       string    `json:"fileName"`
	FileURL        string    `json:"fileUrl"`
	FileType       string    `json:"fileType"`
	FileSize       int64     `json:"fileSize"`
	SubmissionDate string    `json:"submissionDate"`
	Comments       []Comment `json:"comments,omitempty"`
}

// Mission is a recurring, unit-scoped task assigned to a weekday, expecting
// file-report submissions from users. UnitID may be the UnitAll sentinel.
type Mission struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Day         string       `json:"day,omitempty"`
	UnitID      string       `json:"unitId"`
	UnitName    string       `json:"unitName"`
	CreatedAt   string       `json:"createdAt"`
	DueDate     string       `json:"dueDate"`
	CreatedBy   *ActorRef    `json:"createdBy,omitempty"`
	Submissions []Submission `json:"submissions,omitempty"`
}

// ISOTime renders t the way the original data set stores timestamps:
// UTC, millisecond precision, trailing Z. Date fields stay strings so a
// collection written by a prior run round-trips byte for byte.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// ParseISO reads the timestamp formats that occur in stored data: with or
// without milliseconds, zone or none, or a bare date.
func ParseISO(value string) (time.Time, bool) {
	for _, layout := range []string{
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a millisecond-epoch id. Ids stay time-ordered but are
// guarded so two calls in the same millisecond never collide.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}

func cloneComments(src []Comment) []Comment {
	if src == nil {
		return nil
	}
	out := make([]Comment, len(src))
	copy(out, src)
	return out
}

func (d Document) Clone() Document {
	out := d
	out.Comments = cloneComments(d.Comments)
	return out
}

func (s Submission) Clone() Submission {
	out := s
	out.Comments = cloneComments(s.Comments)
	return out
}

func (m Mission) Clone() Mission {
	out := m
	if m.CreatedBy != nil {
		ref := *m.CreatedBy
		out.CreatedBy = &ref
	}
	if m.Submissions != nil {
		out.Submissions = make([]Submission, len(m.Submissions))
		for i, sub := range m.Submissions {
			out.Submissions[i] = sub.Clone()
		}
	}
	return out
}
