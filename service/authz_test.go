package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservedAdminPolicy_IsAdmin(t *testing.T) {
	policy := NewReservedAdminPolicy(0, "")

	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{"reserved id", Identity{UserID: 1, HasUserID: true}, true},
		{"other id", Identity{UserID: 2, HasUserID: true}, false},
		{"zero id without flag", Identity{}, false},
		{"admin username", Identity{Username: "admin"}, true},
		{"admin username any case", Identity{Username: "AdMiN"}, true},
		{"other username", Identity{Username: "tresorier"}, false},
		{"other id but admin name", Identity{UserID: 7, HasUserID: true, Username: "ADMIN"}, true},
		{"reserved id with other name", Identity{UserID: 1, HasUserID: true, Username: "tresorier"}, true},
		{"admin prefix is not admin", Identity{Username: "administrateur"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.IsAdmin(tt.id))
		})
	}
}

func TestReservedAdminPolicy_Custom(t *testing.T) {
	var gate Authorizer = NewReservedAdminPolicy(42, "pasteur")

	assert.True(t, gate.IsAdmin(Identity{UserID: 42, HasUserID: true}))
	assert.True(t, gate.IsAdmin(Identity{Username: "Pasteur"}))
	assert.False(t, gate.IsAdmin(Identity{UserID: 1, HasUserID: true}))
	assert.False(t, gate.IsAdmin(Identity{Username: "admin"}))
}
