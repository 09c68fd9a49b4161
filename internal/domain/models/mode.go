package models

// Mode режим работы терминала
type Mode int

const (
	ModeAttendance Mode = iota
	ModeEnroll
	ModeSearch
	ModeReset
)

// Modes порядок режимов в меню
var Modes = []Mode{ModeAttendance, ModeEnroll, ModeSearch, ModeReset}

func (m Mode) String() string {
	switch m {
	case ModeAttendance:
		return "Attendance"
	case ModeEnroll:
		return "Enroll"
	case ModeSearch:
		return "Search"
	case ModeReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Event событие кнопки
type Event int

const (
	EventNone Event = iota
	EventNext
	EventSelect
)

func (e Event) String() string {
	switch e {
	case EventNext:
		return "next"
	case EventSelect:
		return "select"
	default:
		return "none"
	}
}
