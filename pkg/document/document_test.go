package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `
<div class="mw-parser-output">
  <div class="mw-heading mw-heading2"><h2 id="西晉">西晉（266年—316年）</h2><span class="mw-editsection">[<a>編輯</a>]</span></div>
  <table class="wikitable">
    <tr><th>年號</th><th>起訖時間</th></tr>
    <tr><td> 泰始 </td><td>265年－274年</td></tr>
    <tr><td><a href="/wiki/x">咸寧</a><sup>[1]</sup></td><td>275年<br/>－<br/>280年</td></tr>
  </table>
  <h3>東晉</h3>
  <table>
    <tr><td>建武<table><tr><td>inner</td><td>1年</td></tr></table></td><td>317年</td></tr>
  </table>
  <script>var ignored = "年號";</script>
</div>`

func TestParse(t *testing.T) {
	nodes, err := ParseString(samplePage)
	require.NoError(t, err)

	kinds := make([]Kind, len(nodes))
	for i, n := range nodes {
		kinds[i] = n.Kind
	}
	assert.Equal(t, []Kind{KindHeading, KindTable, KindHeading, KindTable, KindTable}, kinds)

	assert.Equal(t, 2, nodes[0].Level)
	assert.Equal(t, "西晉（266年—316年）", nodes[0].Text)
	assert.Equal(t, 3, nodes[2].Level)
	assert.Equal(t, "東晉", nodes[2].Text)

	want := []Row{
		{"年號", "起訖時間"},
		{"泰始", "265年－274年"},
		{"咸寧[1]", "275年－280年"},
	}
	if diff := cmp.Diff(want, nodes[1].Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNestedTables(t *testing.T) {
	nodes, err := ParseString(samplePage)
	require.NoError(t, err)

	outer := nodes[3]
	require.Len(t, outer.Rows, 2, "outer table sees nested rows as descendants")
	assert.Equal(t, Row{"建武inner1年", "inner", "1年", "317年"}, outer.Rows[0])

	inner := nodes[4]
	assert.Equal(t, []Row{{"inner", "1年"}}, inner.Rows)
}

func TestTextNormalizesToNFC(t *testing.T) {
	// "é" written as e + combining acute accent
	nodes, err := ParseString("<h2>Cafe\u0301</h2>")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Caf\u00e9", nodes[0].Text)
}

func TestParseEmpty(t *testing.T) {
	nodes, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "heading", KindHeading.String())
	assert.Equal(t, "table", KindTable.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
