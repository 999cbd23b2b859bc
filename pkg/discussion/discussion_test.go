package discussion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "2 days", want: 48},
		{in: "1 day", want: 24},
		{in: "5 hours", want: 5},
		{in: "1 hour", want: 1},
		{in: "2 days 3 hours", want: 51},
		{in: "3 hours 2 days", want: 51},
		{in: "  2 Days  ", want: 48},
		{in: "2days3hours", want: 51},
		{in: "36", want: 36},
		{in: "0 hours", want: 0},
		{in: "about 4 days", want: 96},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "1825 days", want: MaxHours},
		{in: "43800", want: MaxHours},
		{in: "43801", wantErr: true},
		{in: "3000000 hours", wantErr: true},
		{in: "300000 days", wantErr: true},
		{in: "1825 days 1 hour", wantErr: true},
		{in: "99999999999999999999 hours", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0 hours", Format(0))
	assert.Equal(t, "5 hours", Format(5))
	assert.Equal(t, "1 days", Format(24))
	assert.Equal(t, "2 days 3 hours", Format(51))
	assert.Equal(t, "0 hours", Format(-4))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for n := 0; n <= 24*14; n++ {
		got, err := Parse(Format(n))
		require.NoError(t, err)
		require.Equal(t, n, got, "round trip of %d via %q", n, Format(n))
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("27")
	require.NoError(t, err)
	assert.Equal(t, "1 days 3 hours", got)

	_, err = Normalize("tomorrow")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestCalculateRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("expired exactly at the period", func(t *testing.T) {
		got := CalculateRemaining("2 days", now.Add(-48*time.Hour), now)
		assert.Equal(t, Remaining{}, got)
		assert.True(t, got.IsZero())
	})

	t.Run("partially elapsed", func(t *testing.T) {
		got := CalculateRemaining("2 days", now.Add(-25*time.Hour), now)
		assert.Equal(t, Remaining{Days: 0, Hours: 23, Minutes: 0, Seconds: 0}, got)
	})

	t.Run("floors into units", func(t *testing.T) {
		start := now.Add(-(90*time.Minute + 15*time.Second))
		got := CalculateRemaining("1 days 2 hours", start, now)
		assert.Equal(t, Remaining{Days: 1, Hours: 0, Minutes: 29, Seconds: 45}, got)
		assert.Equal(t, 24*time.Hour+29*time.Minute+45*time.Second, got.Duration())
	})

	t.Run("unparsable period counts as ended", func(t *testing.T) {
		assert.True(t, CalculateRemaining("whenever", now, now).IsZero())
	})

	t.Run("long past", func(t *testing.T) {
		assert.True(t, CalculateRemaining("3 hours", now.Add(-72*time.Hour), now).IsZero())
	})
}

func TestStateOf(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, StateActive, StateOf("2 days", now.Add(-time.Hour), now))
	assert.Equal(t, StateExpired, StateOf("2 days", now.Add(-49*time.Hour), now))
	assert.Equal(t, StateManuallyEnded, StateOf("0 hours", now, now))
	assert.Equal(t, StateManuallyEnded, StateOf(" 0 Hours ", now.Add(-time.Hour), now))
	// "0" parses to zero hours but is not the sentinel
	assert.Equal(t, StateExpired, StateOf("0", now, now))
}

func TestEndsAt(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end, err := EndsAt("1 days 6 hours", start)
	require.NoError(t, err)
	assert.Equal(t, start.Add(30*time.Hour), end)

	_, err = EndsAt("", start)
	assert.Error(t, err)
}

func TestAdjust(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		got, err := Adjust(10, 0, 14, OperationAdd)
		require.NoError(t, err)
		assert.Equal(t, 24, got)
		assert.Equal(t, "1 days", Format(got))
	})

	t.Run("subtract", func(t *testing.T) {
		got, err := Adjust(30, 1, 0, OperationSubtract)
		require.NoError(t, err)
		assert.Equal(t, 6, got)
	})

	t.Run("subtract clamps at zero", func(t *testing.T) {
		got, err := Adjust(5, 1, 2, OperationSubtract)
		require.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("negative current treated as zero", func(t *testing.T) {
		got, err := Adjust(-3, 0, 2, OperationAdd)
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})

	t.Run("rejects empty amount", func(t *testing.T) {
		_, err := Adjust(5, 0, 0, OperationAdd)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := Adjust(5, -1, 30, OperationAdd)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects amounts past the cap", func(t *testing.T) {
		_, err := Adjust(10, 384307168202282326, 0, OperationAdd)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = Adjust(10, 384307168202282326, 0, OperationSubtract)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = Adjust(10, 0, MaxHours+1, OperationAdd)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("addition stops at the cap", func(t *testing.T) {
		got, err := Adjust(MaxHours-24, 1, 0, OperationAdd)
		require.NoError(t, err)
		assert.Equal(t, MaxHours, got)

		_, err = Adjust(MaxHours-24, 1, 1, OperationAdd)
		assert.ErrorIs(t, err, ErrPeriodTooLong)
	})

	t.Run("rejects unknown operation", func(t *testing.T) {
		_, err := Adjust(5, 0, 1, Operation("multiply"))
		assert.ErrorIs(t, err, ErrUnknownOperation)
	})
}

func TestCheckReduction(t *testing.T) {
	assert.NoError(t, CheckReduction(5, 5*time.Hour+30*time.Minute))
	assert.NoError(t, CheckReduction(5, 5*time.Hour))
	assert.ErrorIs(t, CheckReduction(6, 5*time.Hour+30*time.Minute), ErrExceedsRemaining)
	assert.ErrorIs(t, CheckReduction(-1, time.Hour), ErrInvalidAmount)
	assert.ErrorIs(t, CheckReduction(MaxHours+1, 100000*time.Hour), ErrInvalidAmount)
}

func TestLongestPeriodKeepsItsCountdown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, StateActive, StateOf("1825 days", now, now))
	assert.Equal(t, Remaining{Days: 1825}, CalculateRemaining("1825 days", now, now))
}
