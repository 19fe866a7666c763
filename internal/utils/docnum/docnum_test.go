package docnum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "JE-0001", Format("JE-", 1))
	assert.Equal(t, "JE-0007", Format("JE-", 7))
	assert.Equal(t, "PAY-0042", Format("PAY-", 42))
	assert.Equal(t, "RCP-9999", Format("RCP-", 9999))

	// Past four digits the number simply grows wider.
	assert.Equal(t, "JE-10000", Format("JE-", 10000))
	assert.Equal(t, "EXP-123456", Format("EXP-", 123456))
}

func TestNext(t *testing.T) {
	assert.Equal(t, int64(1), Next(0), "First allocation starts at 1")
	assert.Equal(t, int64(8), Next(7))
	assert.Equal(t, int64(1), Next(-5), "Negative max is treated as empty")
}

func TestParse(t *testing.T) {
	tests := []struct {
		entryNo    string
		wantSeries string
		wantSeq    int64
		wantErr    bool
	}{
		{entryNo: "JE-0007", wantSeries: "JE-", wantSeq: 7},
		{entryNo: "PAY-0042", wantSeries: "PAY-", wantSeq: 42},
		{entryNo: "JE-10000", wantSeries: "JE-", wantSeq: 10000},
		{entryNo: "JE-", wantErr: true},
		{entryNo: "JE-0000", wantErr: true},
		{entryNo: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.entryNo, func(t *testing.T) {
			series, seq, err := Parse(tt.entryNo)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantSeries, series)
			assert.Equal(t, tt.wantSeq, seq)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, seq := range []int64{1, 9, 10, 9999, 10000} {
		entryNo := Format("JE-", seq)
		series, parsed, err := Parse(entryNo)
		assert.NoError(t, err)
		assert.Equal(t, "JE-", series)
		assert.Equal(t, seq, parsed)
	}
}
