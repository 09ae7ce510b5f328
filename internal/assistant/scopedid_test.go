package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScopedID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ScopedID
	}{
		{name: "global", input: "global_1", want: GlobalID(1)},
		{name: "org", input: "org_12", want: OrgID(12)},
		{name: "zero id", input: "global_0", want: GlobalID(0)},
		{name: "large id", input: "org_4611686018427387903", want: OrgID(4611686018427387903)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScopedID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScopedIDMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "no separator", input: "global1"},
		{name: "unknown scope", input: "tenant_4"},
		{name: "case sensitive scope", input: "Global_1"},
		{name: "empty scope", input: "_1"},
		{name: "empty id", input: "org_"},
		{name: "non numeric id", input: "global_abc"},
		{name: "negative id", input: "global_-1"},
		{name: "signed id", input: "global_+1"},
		{name: "fractional id", input: "global_1.5"},
		{name: "underscore in id", input: "org_1_2"},
		{name: "separator only", input: "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScopedID(tt.input)
			require.Error(t, err)
			assert.True(t, IsMalformedKey(err), "want MALFORMED_KEY, got %v", err)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.input, perr.Key)
		})
	}
}

func TestScopedIDRoundTrip(t *testing.T) {
	for _, id := range []ScopedID{GlobalID(0), GlobalID(1), GlobalID(42), OrgID(1), OrgID(9000)} {
		got, err := ParseScopedID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestScopedIDString(t *testing.T) {
	assert.Equal(t, "global_3", GlobalID(3).String())
	assert.Equal(t, "org_12", OrgID(12).String())
	assert.Equal(t, "", ScopedID{}.String())
	assert.True(t, ScopedID{}.IsZero())
	assert.False(t, GlobalID(1).IsZero())
}

func TestScopedIDJSON(t *testing.T) {
	data, err := json.Marshal(GlobalID(7))
	require.NoError(t, err)
	assert.Equal(t, `"global_7"`, string(data))

	var id ScopedID
	require.NoError(t, json.Unmarshal([]byte(`"org_3"`), &id))
	assert.Equal(t, OrgID(3), id)

	var zero ScopedID
	require.NoError(t, json.Unmarshal([]byte(`""`), &zero))
	assert.True(t, zero.IsZero())

	err = json.Unmarshal([]byte(`"tenant_3"`), &id)
	require.Error(t, err)
	assert.True(t, IsMalformedKey(err))
}
