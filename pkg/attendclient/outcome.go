package attendclient

import (
	"fmt"
	"net/http"
)

// Outcome категория ответа сервиса
type Outcome int

const (
	OutcomeOnTime Outcome = iota
	OutcomeLate
	OutcomeValidation
	OutcomeNotFound
	OutcomePolicy
	OutcomeConflict
	OutcomeHTTPError
	OutcomeOffline
	OutcomeUnreachable
	OutcomeDeleted
	OutcomeDeleteFailed
)

var outcomeNames = map[Outcome]string{
	OutcomeOnTime:       "OnTime",
	OutcomeLate:         "Late",
	OutcomeValidation:   "Validation",
	OutcomeNotFound:     "NotFound",
	OutcomePolicy:       "Policy",
	OutcomeConflict:     "Conflict",
	OutcomeHTTPError:    "HTTPError",
	OutcomeOffline:      "Offline",
	OutcomeUnreachable:  "Unreachable",
	OutcomeDeleted:      "Deleted",
	OutcomeDeleteFailed: "DeleteFailed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

type classification struct {
	outcome Outcome
	message string
}

// Таблица ответов эндпоинта отметки
var captureStatuses = map[int]classification{
	http.StatusOK:                {OutcomeOnTime, "Attendance Marked"},
	http.StatusCreated:           {OutcomeLate, "Attendance LATE"},
	http.StatusUnauthorized:      {OutcomeValidation, "Invalid Params"},
	http.StatusPaymentRequired:   {OutcomeValidation, "Bad Timestamp"},
	http.StatusForbidden:         {OutcomeValidation, "Bad Sim Time"},
	http.StatusNotFound:          {OutcomeNotFound, "Not Found"},
	http.StatusMethodNotAllowed:  {OutcomePolicy, "Account Inactive"},
	http.StatusNotAcceptable:     {OutcomePolicy, "No Schedule"},
	http.StatusProxyAuthRequired: {OutcomePolicy, "No Class Today"},
	http.StatusRequestTimeout:    {OutcomePolicy, "No Class Now"},
	http.StatusConflict:          {OutcomeConflict, "Already Marked"},
}

const (
	msgOffline     = "No WiFi"
	msgUnreachable = "Server Unreachable"
)

// Classify переводит статус ответа на отметку в категорию и сообщение.
// Зависит только от кода; тело ответа не учитывается.
func Classify(status int) (Outcome, string) {
	if c, ok := captureStatuses[status]; ok {
		return c.outcome, c.message
	}
	return OutcomeHTTPError, fmt.Sprintf("HTTP Error %d", status)
}

// ClassifyDelete переводит статус ответа на удаление
func ClassifyDelete(status int) (Outcome, string) {
	if status == http.StatusOK {
		return OutcomeDeleted, "Student Data Deleted"
	}
	return OutcomeDeleteFailed, fmt.Sprintf("Delete Failed %d", status)
}
