package terminal

import (
	"context"
	"errors"
	"fmt"

	"attendterm/internal/service/session"
	"attendterm/pkg/attendclient"
)

// ShowStep выводит подсказку этапа операции с модулем; подключается к session.Driver.OnStep
func (t *Terminal) ShowStep(s session.Step) {
	title := t.mode.String()
	switch s {
	case session.StepPlaceFinger:
		t.show(title, "Place finger")
	case session.StepRemoveFinger:
		t.show(title, "Remove finger")
	case session.StepPlaceAgain:
		t.show("Place same", "finger again")
	case session.StepProcessing:
		t.show(title, "Processing...")
	}
}

// attendanceOnce одна попытка отметки. false означает выход в меню.
func (t *Terminal) attendanceOnce(ctx context.Context) bool {
	match, err := t.session.Identify(ctx)
	if err != nil {
		return t.failed(err)
	}

	t.show(fmt.Sprintf("ID %d", match.Slot), "Sending...")
	res := t.reporter.Report(ctx, attendclient.CaptureEvent{Slot: match.Slot, CapturedAt: t.clock.Now()})
	switch {
	case res.Err != nil:
		t.log.Warn("report failed", "slot", match.Slot, "outcome", res.Outcome, "err", res.Err)
	case !res.Success():
		t.log.Warn("attendance rejected", "slot", match.Slot, "status", res.Status, "outcome", res.Outcome)
	default:
		t.log.Info("attendance reported", "slot", match.Slot, "status", res.Status, "outcome", res.Outcome)
	}
	// сообщения сервиса длиннее строки дисплея, поэтому выводятся с переносом на обе строки
	t.message(res.Message)
	t.hold()
	return true
}

func (t *Terminal) enrollOnce(ctx context.Context) bool {
	slot, err := t.session.Enroll(ctx)
	if err != nil {
		if errors.Is(err, session.ErrAborted) {
			return false
		}
		t.log.Warn("enroll failed", "err", err)
		t.show("Enroll failed", reason(err))
		t.hold()
		return true
	}
	t.show("Enrolled", fmt.Sprintf("ID %d", slot))
	t.hold()
	return true
}

// searchOnce проверяет палец локально, без отправки в сервис
func (t *Terminal) searchOnce(ctx context.Context) bool {
	match, err := t.session.Identify(ctx)
	if err != nil {
		return t.failed(err)
	}
	t.show(fmt.Sprintf("Found ID %d", match.Slot), fmt.Sprintf("Score %d", match.Score))
	t.hold()
	return true
}

// failed показывает неудачную идентификацию; отмена оператором выходит в меню
func (t *Terminal) failed(err error) bool {
	if errors.Is(err, session.ErrAborted) {
		return false
	}
	if errors.Is(err, session.ErrNoMatch) {
		t.message("No match")
	} else {
		t.log.Warn("identify failed", "err", err)
		t.show("Sensor error", reason(err))
	}
	t.hold()
	return true
}
