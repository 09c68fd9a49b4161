package r307

import (
	"errors"
	"fmt"
)

var (
	ErrBadHeader      = errors.New("r307: bad packet header")
	ErrBadAddress     = errors.New("r307: packet from unexpected address")
	ErrChecksum       = errors.New("r307: checksum mismatch")
	ErrShortResponse  = errors.New("r307: short response")
	ErrUnexpectedPID  = errors.New("r307: unexpected packet identifier")
	ErrTimeout        = errors.New("r307: timeout waiting for response")
	ErrPortClosed     = errors.New("r307: port is closed")
	ErrPayloadTooLong = errors.New("r307: payload too long")

	ErrPacketError   = &ConfirmError{Code: CodePacketError}
	ErrNoFinger      = &ConfirmError{Code: CodeNoFinger}
	ErrEnrollFail    = &ConfirmError{Code: CodeEnrollFail}
	ErrImageMessy    = &ConfirmError{Code: CodeImageMessy}
	ErrFewFeatures   = &ConfirmError{Code: CodeFewFeatures}
	ErrNoMatch       = &ConfirmError{Code: CodeNoMatch}
	ErrNotFound      = &ConfirmError{Code: CodeNotFound}
	ErrCombineFail   = &ConfirmError{Code: CodeCombineFail}
	ErrBadLocation   = &ConfirmError{Code: CodeBadLocation}
	ErrDeleteFail    = &ConfirmError{Code: CodeDeleteFail}
	ErrClearFail     = &ConfirmError{Code: CodeClearFail}
	ErrWrongPassword = &ConfirmError{Code: CodeWrongPassword}
	ErrInvalidImage  = &ConfirmError{Code: CodeInvalidImage}
	ErrFlashError    = &ConfirmError{Code: CodeFlashError}
)

var codeText = map[byte]string{
	CodePacketError:     "packet receive error",
	CodeNoFinger:        "no finger on sensor",
	CodeEnrollFail:      "failed to enroll finger",
	CodeImageMessy:      "image too messy",
	CodeFewFeatures:     "too few feature points",
	CodeNoMatch:         "fingers do not match",
	CodeNotFound:        "no matching template",
	CodeCombineFail:     "failed to combine character files",
	CodeBadLocation:     "page id beyond library",
	CodeReadTemplate:    "error reading template",
	CodeUploadTemplate:  "error uploading template",
	CodeDeleteFail:      "failed to delete template",
	CodeClearFail:       "failed to clear library",
	CodeWrongPassword:   "wrong password",
	CodeInvalidImage:    "no valid primary image",
	CodeFlashError:      "flash write error",
	CodeInvalidRegister: "invalid register number",
}

// ConfirmError ненулевой код подтверждения, полученный от модуля
type ConfirmError struct {
	Code byte
}

func (e *ConfirmError) Error() string {
	if text, ok := codeText[e.Code]; ok {
		return fmt.Sprintf("r307: confirm code 0x%02X: %s", e.Code, text)
	}
	return fmt.Sprintf("r307: confirm code 0x%02X", e.Code)
}

// Is сравнивает ошибки по коду, чтобы errors.Is(err, ErrNoFinger) работал
// для любых экземпляров ConfirmError.
func (e *ConfirmError) Is(target error) bool {
	t, ok := target.(*ConfirmError)
	return ok && t.Code == e.Code
}
