package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Roles
	}{
		{name: "single string", in: `"admin"`, want: Roles{"admin"}},
		{name: "array", in: `["admin","customer"]`, want: Roles{"admin", "customer"}},
		{name: "empty string", in: `""`, want: Roles{}},
		{name: "empty array", in: `[]`, want: Roles{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Roles
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRolesUnmarshalRejectsObjects(t *testing.T) {
	var got Roles
	assert.Error(t, json.Unmarshal([]byte(`{"role":"admin"}`), &got))
}

func TestRolesMembershipIsCaseInsensitive(t *testing.T) {
	roles := Roles{"Admin"}

	assert.True(t, roles.Has("admin"))
	assert.True(t, roles.IsAdmin())
	assert.False(t, roles.IsCustomer())
}

func TestRolesInsideUserPayload(t *testing.T) {
	var asString, asArray User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","roles":"customer"}`), &asString))
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","roles":["customer"]}`), &asArray))

	assert.Equal(t, asString.Roles, asArray.Roles)
	assert.True(t, asString.Roles.IsCustomer())
}

func TestDisplayNameFallsBackToGuest(t *testing.T) {
	var missing *User
	assert.Equal(t, GuestCustomerName, missing.DisplayName())
	assert.Equal(t, GuestCustomerName, (&User{}).DisplayName())
	assert.Equal(t, "Maria Santos", (&User{FullName: "Maria Santos"}).DisplayName())
}
