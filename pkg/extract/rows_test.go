package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eramap/pkg/document"
	"github.com/agentstation/eramap/pkg/eras"
)

func TestRowExtractor(t *testing.T) {
	x, err := NewRowExtractor(DefaultConfig())
	require.NoError(t, err)

	tests := []struct {
		name       string
		row        document.Row
		wantReason SkipReason
		want       eras.Record
	}{
		{
			name:       "accepted range",
			row:        document.Row{"泰始", "265年－274年", "晉武帝"},
			wantReason: Accepted,
			want:       eras.Record{Regime: "西晉", Era: "泰始", StartAD: 265, EndAD: 274},
		},
		{
			name:       "accepted single year",
			row:        document.Row{"太熙", "290年"},
			wantReason: Accepted,
			want:       eras.Record{Regime: "西晉", Era: "太熙", StartAD: 290, EndAD: 290},
		},
		{"short row", document.Row{"泰始"}, SkipShortRow, eras.Record{}},
		{"empty era", document.Row{" ", "265年"}, SkipEmptyEra, eras.Record{}},
		{"header label with valid year", document.Row{"年號", "265年"}, SkipHeaderLabel, eras.Record{}},
		{"simplified header label", document.Row{"纪年", "起讫"}, SkipHeaderLabel, eras.Record{}},
		{"era too short", document.Row{"晉", "265年"}, SkipEraLength, eras.Record{}},
		{"era too long", document.Row{"七個字的年號名", "265年"}, SkipEraLength, eras.Record{}},
		{"no year", document.Row{"泰始", "不詳"}, SkipNoYear, eras.Record{}},
		{"bc year", document.Row{"太初", "前104年"}, SkipNoYear, eras.Record{}},
		{"start outside window", document.Row{"建安", "196年－220年"}, SkipOutOfWindow, eras.Record{}},
		{"end outside window", document.Row{"開皇", "581年－601年"}, SkipOutOfWindow, eras.Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := x.Extract("西晉", tt.row)
			assert.Equal(t, tt.wantReason, reason)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowExtractorSixCharacterEra(t *testing.T) {
	x, err := NewRowExtractor(DefaultConfig())
	require.NoError(t, err)

	got, reason := x.Extract("北魏", document.Row{"六個字年號名", "400年"})
	assert.Equal(t, Accepted, reason)
	assert.Equal(t, "六個字年號名", got.Era)
}
