package terminal

import (
	"context"
	"errors"

	"attendterm/internal/domain/models"
	"attendterm/internal/domain/ports"
	"attendterm/internal/service/session"
)

// reset двухфазное подтверждение очистки. Окно отсчитывается от входа в режим;
// короткое нажатие игнорируется и окно не продлевает.
func (t *Terminal) reset(ctx context.Context) {
	deadline := t.clock.Now().Add(t.cfg.ResetWindow)
	t.show("Erase all data?", "Hold to confirm")

	for {
		ev, err := t.input.WaitUntil(ctx, deadline)
		if err != nil {
			return
		}
		if ev == models.EventSelect {
			break
		}
		if ev == models.EventNone {
			t.log.Info("reset cancelled: window elapsed")
			t.message("Reset cancelled")
			t.hold()
			return
		}
		t.log.Debug("short press ignored during reset window")
	}

	t.log.Warn("reset confirmed")
	t.show("Erasing...", "")
	if err := t.session.EraseAll(ctx); err != nil {
		t.log.Error("erase failed", "err", err)
		t.show("Erase failed", reason(err))
		t.hold()
		return
	}
	t.show("Local data", "erased")

	res := t.reporter.DeleteAll(ctx)
	if res.Err != nil || !res.Success() {
		t.log.Warn("remote delete failed", "status", res.Status, "outcome", res.Outcome, "err", res.Err)
	}
	t.message(res.Message)
	t.hold()
}

// reason короткая причина для второй строки
func reason(err error) string {
	var se *ports.SensorError
	switch {
	case errors.As(err, &se):
		return se.Reason
	case errors.Is(err, session.ErrLibraryFull):
		return "Library full"
	case errors.Is(err, session.ErrNoMatch):
		return "No match"
	default:
		return "Storage error"
	}
}
