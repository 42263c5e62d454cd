package ecourts

import (
	"math/rand"
	"testing"

	"causelist-backend/lib/htmlutil"

	random "github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPayload(t *testing.T) {
	payload := extractJSONPayload(`{"status": 1, "dist_list": "<option value=\"1\">A</option>"}`)
	require.EqualValues(t, 1, payload["status"])
	require.Equal(t, `<option value="1">A</option>`, payload["dist_list"])

	// the portal sometimes prefixes debug noise before the object
	payload = extractJSONPayload("Notice: deprecated call\n \t{\"app_token\": \"tok\"}")
	require.Equal(t, "tok", payload["app_token"])
}

func TestExtractJSONPayloadIsIdempotent(t *testing.T) {
	text := `{"status": 1, "errormsg": "x"}`
	first := extractJSONPayload(text)
	second := extractJSONPayload(text)
	require.Equal(t, first, second)
	require.Len(t, first, 2)
}

func TestExtractJSONPayloadNeverFails(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"<html><body>session expired</body></html>",
		"{broken",
		`{"truncated": `,
		"[1, 2, 3]",
	} {
		require.Empty(t, extractJSONPayload(text), "input: %q", text)
	}

	// arbitrary garbage must degrade to an empty map as well
	rndm := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		text, err := random.String(rndm.Intn(64))
		require.NoError(t, err)
		require.Empty(t, extractJSONPayload(text), "input: %q", text)
	}
}

const statePage = `
<html><body>
<form>
<input id="app_token" value="abc123">
<select id="sess_state_code" name="state_code">
	<option value="0">Select State</option>
	<option value="26"> Delhi </option>
	<option value="1">Maharashtra</option>
	<option value="">broken</option>
</select>
</form>
</body></html>`

func TestExtractOptions(t *testing.T) {
	doc, err := htmlutil.Fragment(statePage)
	require.NoError(t, err)

	opts := extractOptions(doc, "select#sess_state_code", "select[name=state_code]")
	require.Equal(t, []option{
		{Value: "26", Text: "Delhi"},
		{Value: "1", Text: "Maharashtra"},
	}, opts)

	// later selectors are only consulted when earlier ones miss
	opts = extractOptions(doc, "select#does_not_exist", "select[name=state_code]")
	require.Len(t, opts, 2)

	opts = extractOptions(doc, "select#does_not_exist")
	require.Empty(t, opts)
}

func TestParseOptionFragment(t *testing.T) {
	opts := parseOptionFragment(`
		<option value="0">Select District</option>
		<option value="9">New Delhi</option>
		<option value="14">Shahdara</option>`)
	require.Equal(t, []option{
		{Value: "9", Text: "New Delhi"},
		{Value: "14", Text: "Shahdara"},
	}, opts)

	require.Empty(t, parseOptionFragment(""))
}

func TestExtractTableRows(t *testing.T) {
	markup := `
	<table>
		<tr><th>Sr</th><th>Case</th><th>Parties</th><th>Advocate</th></tr>
		<tr><td> 1 </td><td>CS/100/2024</td><td>A vs B</td><td>Adv. C</td></tr>
		<tr><td>2</td><td>CS/101/2024</td><td>D vs E</td><td>Adv. F</td><td>Hearing</td></tr>
		<tr><td colspan="4">too short</td></tr>
	</table>`

	rows := extractTableRows(markup, 4)
	require.Equal(t, [][]string{
		{"1", "CS/100/2024", "A vs B", "Adv. C"},
		{"2", "CS/101/2024", "D vs E", "Adv. F", "Hearing"},
	}, rows)

	require.Empty(t, extractTableRows("<div>no table here</div>", 4))
}
