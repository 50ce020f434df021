package tstype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"address", "AddressData"},
		{"phoneNumbers", "PhoneNumbersData"},
		{"phone_numbers", "PhoneNumbersData"},
		{"phone-numbers", "PhoneNumbersData"},
		{"billing__address", "BillingAddressData"},
		{"_private", "PrivateData"},
		{"Root", "RootData"},
		{"ärger", "ÄrgerData"},
		{"ßtraße", "ßtraßeData"},
		{"\xffab", "\xffabData"},
		{"a_\xfe", "A\xfeData"},
		{"", "Data"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveName(tt.key))
		})
	}
}

func TestDeriveName_Collides(t *testing.T) {
	// Distinct keys may normalize to the same name.
	assert.Equal(t, DeriveName("a_b"), DeriveName("a-b"))
	assert.Equal(t, DeriveName("a_b"), DeriveName("A_b"))
}

func TestDerivePathName(t *testing.T) {
	assert.Equal(t, "UserProfileAddressData", derivePathName([]string{"user", "profile"}, "address"))
	assert.Equal(t, "AddressData", derivePathName(nil, "address"))
	assert.Equal(t, "UserProfileAddressData", derivePathName([]string{"userProfile"}, "address"))
	assert.Equal(t, "PhoneNumbersHomeData", derivePathName([]string{"phone_numbers"}, "home"))
}

func TestNumberedName(t *testing.T) {
	assert.Equal(t, "User2Data", numberedName("UserData", 2))
	assert.Equal(t, "ABC3Data", numberedName("ABCData", 3))
}

func TestParseNaming(t *testing.T) {
	n, err := ParseNaming("")
	require.NoError(t, err)
	assert.Equal(t, NamingFlat, n)

	n, err = ParseNaming("PATH")
	require.NoError(t, err)
	assert.Equal(t, NamingPath, n)
	assert.Equal(t, "path", n.String())

	_, err = ParseNaming("hash")
	assert.Error(t, err)
}
