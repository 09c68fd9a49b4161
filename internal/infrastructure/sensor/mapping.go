package sensor

import (
	"context"
	"errors"

	"attendterm/internal/domain/ports"
	"attendterm/pkg/r307"
)

// Короткие причины для второй строки дисплея
var reasons = map[byte]string{
	r307.CodePacketError:    "Packet error",
	r307.CodeEnrollFail:     "Enroll failed",
	r307.CodeImageMessy:     "Messy image",
	r307.CodeFewFeatures:    "Few features",
	r307.CodeNoMatch:        "No match",
	r307.CodeCombineFail:    "Finger mismatch",
	r307.CodeBadLocation:    "Bad slot",
	r307.CodeReadTemplate:   "Read failed",
	r307.CodeUploadTemplate: "Upload failed",
	r307.CodeDeleteFail:     "Delete failed",
	r307.CodeClearFail:      "Clear failed",
	r307.CodeWrongPassword:  "Wrong password",
	r307.CodeInvalidImage:   "Invalid image",
	r307.CodeFlashError:     "Flash error",
}

// Reason возвращает короткое описание кода модуля.
func Reason(code byte) string {
	if r, ok := reasons[code]; ok {
		return r
	}
	return "Sensor error"
}

// MapError переводит ошибки r307 в доменные ошибки ports.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, r307.ErrNoFinger) {
		return ports.ErrNoFinger
	}
	if errors.Is(err, r307.ErrNotFound) {
		return ports.ErrNoMatch
	}

	var ce *r307.ConfirmError
	if errors.As(err, &ce) {
		return &ports.SensorError{Op: op, Code: int(ce.Code), Reason: Reason(ce.Code), Err: err}
	}
	return &ports.SensorError{Op: op, Code: -1, Reason: "Link error", Err: err}
}
