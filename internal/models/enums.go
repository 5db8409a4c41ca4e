package models

// Grade is the year group a student or class belongs to.
type Grade string

const (
	Grade9  Grade = "9th"
	Grade10 Grade = "10th"
	Grade11 Grade = "11th"
	Grade12 Grade = "12th"
)

// Grades lists every grade in ascending order.
var Grades = []Grade{Grade9, Grade10, Grade11, Grade12}

// Section splits a grade into parallel groups.
type Section string

const (
	SectionA Section = "A"
	SectionB Section = "B"
	SectionC Section = "C"
)

// Sections lists every section.
var Sections = []Section{SectionA, SectionB, SectionC}

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// AttendanceStatuses lists every attendance status.
var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLate}

// FeeStatus defines the payment state of a fee.
type FeeStatus string

const (
	FeePaid    FeeStatus = "PAID"
	FeePending FeeStatus = "PENDING"
	FeeOverdue FeeStatus = "OVERDUE"
)

// FeeStatuses lists every fee status.
var FeeStatuses = []FeeStatus{FeePaid, FeePending, FeeOverdue}

// UnknownLabel is shown when an enrichment join finds no related row.
const UnknownLabel = "Unknown"

// DateLayout is the ISO calendar date format used by every date column.
const DateLayout = "2006-01-02"
