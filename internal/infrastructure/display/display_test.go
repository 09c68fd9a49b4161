package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToASCII(t *testing.T) {
	assert.Equal(t, "Jose Muller", ToASCII("José Müller"))
	assert.Equal(t, "caf? ok", ToASCII("caf☃ ok"))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", Fit("ab", 4))
	assert.Equal(t, "abcd", Fit("abcdef", 4))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		msg          string
		line1, line2 string
	}{
		{"Attendance Marked", "Attendance", "Marked"},
		{"Attendance LATE", "Attendance LATE", ""},
		{"HTTP Error 500", "HTTP Error 500", ""},
		{"Student Data Deleted", "Student Data", "Deleted"},
		{"ABCDEFGHIJKLMNOPQRS", "ABCDEFGHIJKLMNOP", "QRS"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			l1, l2 := Wrap(tt.msg, 16)
			assert.Equal(t, tt.line1, l1)
			assert.Equal(t, tt.line2, l2)
		})
	}
}

type recordingDisplay struct {
	writes [][2]string
	fail   bool
}

func (r *recordingDisplay) Width() int { return 16 }
func (r *recordingDisplay) Show(a, b string) error {
	if r.fail {
		return errors.New("bus error")
	}
	r.writes = append(r.writes, [2]string{a, b})
	return nil
}

func TestCachedSkipsIdenticalScreens(t *testing.T) {
	rec := &recordingDisplay{}
	c := NewCached(rec)

	require.NoError(t, c.Show("> Attendance", "  Enroll"))
	require.NoError(t, c.Show("> Attendance", "  Enroll"))
	require.NoError(t, c.Show("> Attendance   ", "  Enroll"))
	assert.Len(t, rec.writes, 1)

	require.NoError(t, c.Message("Place finger"))
	assert.Len(t, rec.writes, 2)
}

func TestCachedRetriesAfterFailure(t *testing.T) {
	rec := &recordingDisplay{fail: true}
	c := NewCached(rec)

	assert.Error(t, c.Show("a", "b"))
	rec.fail = false
	require.NoError(t, c.Show("a", "b"))
	assert.Len(t, rec.writes, 1)
}

type bufCloser struct{ bytes.Buffer }

func (b *bufCloser) Close() error { return nil }

func TestSerLCDFrames(t *testing.T) {
	buf := &bufCloser{}
	lcd := NewSerLCD(buf, 4)

	require.NoError(t, lcd.Show("Hi", "Ok!!!"))
	expected := []byte{0xFE, 0x80, 'H', 'i', ' ', ' ', 0xFE, 0xC0, 'O', 'k', '!', '!'}
	assert.Equal(t, expected, buf.Bytes())
}

func TestConsoleShow(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, 6)
	require.NoError(t, c.Show("Menu", "Enroll"))
	assert.Equal(t, "+------+\n|Menu  |\n|Enroll|\n+------+\n", out.String())
}
