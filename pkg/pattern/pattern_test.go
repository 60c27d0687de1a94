package pattern

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attrs map[string]string

func (a attrs) Attribute(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

func TestMatchesDynamicValue(t *testing.T) {
	subject := attrs{"tableName": "table"}

	ok, err := Matches("^{{value}}_PK$", "tableName", subject, "TABLE_PK")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Matches("^{{value}}_PK$", "tableName", subject, "INVALID_PK")
	require.NoError(t, err)
	assert.False(t, ok)

	// The dynamic value is upper-cased before substitution.
	ok, err = Matches("^{{value}}_PK$", "tableName", subject, "table_PK")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchesIsFullString(t *testing.T) {
	tests := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"[A-Z]+", "ABC", true},
		{"[A-Z]+", "ABCd", false},
		{"B", "ABC", false},
		{"A|ABC", "ABC", true},
		{"^(?!_)[A-Z_0-9]+(?<!_)$", "VALID_NAME", true},
		{"^(?!_)[A-Z_0-9]+(?<!_)$", "_INVALID", false},
		{"^(?!_)[A-Z_0-9]+(?<!_)$", "INVALID_", false},
		{"^(?!_)[A-Z_0-9]+(?<!_)$", "&VALUE", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.candidate, func(t *testing.T) {
			ok, err := Matches(tt.pattern, "", nil, tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestResolve(t *testing.T) {
	got, err := Resolve("^{{value}}_{{value}}$", "tableName", attrs{"tableName": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "^ABC_ABC$", got)

	got, err = Resolve("^PLAIN$", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "^PLAIN$", got)

	_, err = Resolve("^{{value}}$", "", attrs{})
	assert.True(t, errors.Is(err, ErrNoDynamicValue))

	_, err = Resolve("^{{value}}$", "viewName", attrs{"tableName": "t"})
	assert.True(t, errors.Is(err, ErrUnknownAttribute))

	_, err = Resolve("^{{value}}$", "tableName", nil)
	assert.True(t, errors.Is(err, ErrUnknownAttribute))
}

func TestMatcherReturnsResolvedPattern(t *testing.T) {
	m := NewMatcher()
	ok, resolved, err := m.Matches("^{{value}}_PK$", "tableName", attrs{"tableName": "orders"}, "ORDERS_PK")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "^ORDERS_PK$", resolved)
}

func TestMalformedPattern(t *testing.T) {
	_, err := Matches("^([A-Z$", "", nil, "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("", ""))
	assert.NoError(t, Validate("^[A-Z]+$", ""))
	assert.NoError(t, Validate("^{{value}}_PK$", "tableName"))
	assert.True(t, errors.Is(Validate("^{{value}}_PK$", ""), ErrNoDynamicValue))
	assert.Error(t, Validate("^(unclosed$", ""))
}

func TestCompileCaches(t *testing.T) {
	m := NewMatcher()
	a, err := m.Compile("^A$")
	require.NoError(t, err)
	b, err := m.Compile("^A$")
	require.NoError(t, err)
	assert.Same(t, a, b)
}
