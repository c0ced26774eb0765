package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestDeriveStep(t *testing.T) {
	for _, hasLang := range []bool{false, true} {
		for _, hasName := range []bool{false, true} {
			for _, hasPhone := range []bool{false, true} {
				u := &User{ChatID: 1}
				if hasLang {
					u.LanguageID = int64Ptr(1)
				}
				if hasName {
					u.RealName = strPtr("Jane Doe")
				}
				if hasPhone {
					u.Phone = strPtr("+15550001")
				}

				var expected Step
				switch {
				case !hasLang:
					expected = StepLanguage
				case !hasName:
					expected = StepFullName
				case !hasPhone:
					expected = StepPhone
				default:
					expected = StepComplete
				}

				name := fmt.Sprintf("lang=%t name=%t phone=%t", hasLang, hasName, hasPhone)
				t.Run(name, func(t *testing.T) {
					assert.Equal(t, expected, DeriveStep(u))
				})
			}
		}
	}
}

func TestDeriveStep_NilAndEmptyValues(t *testing.T) {
	assert.Equal(t, StepLanguage, DeriveStep(nil))

	u := &User{LanguageID: int64Ptr(1), RealName: strPtr(""), Phone: strPtr("+1")}
	assert.Equal(t, StepFullName, DeriveStep(u))

	u = &User{LanguageID: int64Ptr(1), RealName: strPtr("Jane"), Phone: strPtr("")}
	assert.Equal(t, StepPhone, DeriveStep(u))
}

func TestUser_HasRole(t *testing.T) {
	tests := []struct {
		name     string
		user     *User
		role     Role
		expected bool
	}{
		{name: "nil user", user: nil, role: RoleAdmin, expected: false},
		{name: "plain user admin", user: &User{}, role: RoleAdmin, expected: false},
		{name: "plain user manager", user: &User{}, role: RoleManager, expected: false},
		{name: "admin", user: &User{IsAdmin: true}, role: RoleAdmin, expected: true},
		{name: "admin acts as manager", user: &User{IsAdmin: true}, role: RoleManager, expected: true},
		{name: "manager", user: &User{IsManager: true}, role: RoleManager, expected: true},
		{name: "manager is not admin", user: &User{IsManager: true}, role: RoleAdmin, expected: false},
		{name: "unknown role", user: &User{IsAdmin: true}, role: Role("owner"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.HasRole(tt.role))
		})
	}
}

func TestCategory_IsSuper(t *testing.T) {
	assert.False(t, (&Category{ChildCount: 0}).IsSuper())
	assert.True(t, (&Category{ChildCount: 1}).IsSuper())
	assert.True(t, (&Category{ChildCount: 7}).IsSuper())
}

func TestConversation_Active(t *testing.T) {
	assert.False(t, Conversation{}.Active())
	assert.False(t, Conversation{Step: StepComplete}.Active())
	assert.True(t, Conversation{Step: StepPhone, Mode: ModeOnboarding}.Active())
}
