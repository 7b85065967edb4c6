package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("creates address with required fields", func(t *testing.T) {
		addr, err := NewAddress("Jane Doe", "12 Elm Street", "Springfield", "IL", "62704", "US")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", addr.FullName())
		assert.Equal(t, "12 Elm Street", addr.Line1())
		assert.Equal(t, "Springfield", addr.City())
		assert.Equal(t, "62704", addr.PostalCode())
		assert.False(t, addr.IsEmpty())
	})

	t.Run("applies options", func(t *testing.T) {
		addr, err := NewAddress("Jane Doe", "12 Elm Street", "Springfield", "IL", "62704", "US",
			WithLine2("Apt 4B"), WithPhone("+1 555 0100"))
		require.NoError(t, err)
		assert.Equal(t, "Apt 4B", addr.Line2())
		assert.Equal(t, "+1 555 0100", addr.Phone())
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		cases := []struct {
			name                                          string
			fullName, line1, city, state, postal, country string
		}{
			{"empty name", "", "12 Elm", "Springfield", "IL", "62704", "US"},
			{"empty line1", "Jane", "", "Springfield", "IL", "62704", "US"},
			{"empty city", "Jane", "12 Elm", "", "IL", "62704", "US"},
			{"empty postal code", "Jane", "12 Elm", "Springfield", "IL", "", "US"},
			{"empty country", "Jane", "12 Elm", "Springfield", "IL", "62704", ""},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewAddress(tc.fullName, tc.line1, tc.city, tc.state, tc.postal, tc.country)
				assert.Error(t, err)
			})
		}
	})
}

func TestAddressFullAddress(t *testing.T) {
	addr, err := NewAddress("Jane Doe", "12 Elm Street", "Springfield", "IL", "62704", "US", WithLine2("Apt 4B"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe, 12 Elm Street, Apt 4B, Springfield, IL, 62704, US", addr.FullAddress())
	assert.Empty(t, EmptyAddress().FullAddress())
}

func TestAddressJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		addr, err := NewAddress("Jane Doe", "12 Elm Street", "Springfield", "IL", "62704", "US", WithPhone("+1 555 0100"))
		require.NoError(t, err)

		data, err := json.Marshal(addr)
		require.NoError(t, err)

		var parsed Address
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.True(t, addr.Equals(parsed))
	})

	t.Run("empty JSON yields empty address", func(t *testing.T) {
		var parsed Address
		require.NoError(t, json.Unmarshal([]byte(`{}`), &parsed))
		assert.True(t, parsed.IsEmpty())
	})

	t.Run("incomplete address fails validation", func(t *testing.T) {
		var parsed Address
		err := json.Unmarshal([]byte(`{"fullName":"Jane","line1":"12 Elm"}`), &parsed)
		assert.Error(t, err)
	})
}

func TestAddressScan(t *testing.T) {
	t.Run("scans JSON bytes", func(t *testing.T) {
		var addr Address
		err := addr.Scan([]byte(`{"fullName":"Jane Doe","line1":"12 Elm Street","city":"Springfield","postalCode":"62704","country":"US"}`))
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", addr.FullName())
	})

	t.Run("scans nil as empty", func(t *testing.T) {
		var addr Address
		require.NoError(t, addr.Scan(nil))
		assert.True(t, addr.IsEmpty())
	})
}
