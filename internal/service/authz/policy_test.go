package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ruslex/ruslex-api/internal/domain"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	allActions := []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
	allResources := []Resource{ResourceLexicon, ResourceGroup, ResourceUser, ResourceStudentLink}

	t.Run("admin is allowed everything", func(t *testing.T) {
		t.Parallel()
		for _, resource := range allResources {
			for _, action := range allActions {
				assert.True(t, Allowed(domain.RoleAdmin, action, resource),
					"admin should be allowed %s on %s", action, resource)
			}
		}
	})

	t.Run("teacher", func(t *testing.T) {
		t.Parallel()
		for _, action := range allActions {
			assert.True(t, Allowed(domain.RoleTeacher, action, ResourceLexicon),
				"teacher should be allowed %s on lexicon", action)
			assert.True(t, Allowed(domain.RoleTeacher, action, ResourceGroup),
				"teacher should be allowed %s on group", action)
		}

		assert.True(t, Allowed(domain.RoleTeacher, ActionRead, ResourceUser))
		assert.False(t, Allowed(domain.RoleTeacher, ActionCreate, ResourceUser))
		assert.False(t, Allowed(domain.RoleTeacher, ActionUpdate, ResourceUser))
		assert.False(t, Allowed(domain.RoleTeacher, ActionDelete, ResourceUser))

		assert.True(t, Allowed(domain.RoleTeacher, ActionCreate, ResourceStudentLink))
		assert.True(t, Allowed(domain.RoleTeacher, ActionRead, ResourceStudentLink))
		assert.True(t, Allowed(domain.RoleTeacher, ActionDelete, ResourceStudentLink))
		assert.False(t, Allowed(domain.RoleTeacher, ActionUpdate, ResourceStudentLink))
	})

	t.Run("student", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Allowed(domain.RoleStudent, ActionRead, ResourceLexicon))
		assert.False(t, Allowed(domain.RoleStudent, ActionCreate, ResourceLexicon))
		assert.False(t, Allowed(domain.RoleStudent, ActionUpdate, ResourceLexicon))
		assert.False(t, Allowed(domain.RoleStudent, ActionDelete, ResourceLexicon))

		for _, action := range allActions {
			assert.True(t, Allowed(domain.RoleStudent, action, ResourceGroup),
				"student should be allowed %s on own groups", action)
		}

		for _, action := range allActions {
			assert.False(t, Allowed(domain.RoleStudent, action, ResourceUser),
				"student should not be allowed %s on user", action)
			assert.False(t, Allowed(domain.RoleStudent, action, ResourceStudentLink),
				"student should not be allowed %s on student_link", action)
		}
	})

	t.Run("unknown role is denied everything", func(t *testing.T) {
		t.Parallel()
		for _, resource := range allResources {
			for _, action := range allActions {
				assert.False(t, Allowed(domain.Role("guest"), action, resource))
			}
		}
	})
}

func TestCanAccessOwned(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	assert.True(t, CanAccessOwned(Principal{ID: ownerID, Role: domain.RoleStudent}, ownerID),
		"owner can access own resource")
	assert.True(t, CanAccessOwned(Principal{ID: uuid.New(), Role: domain.RoleAdmin}, ownerID),
		"admin can access any owned resource")
	assert.False(t, CanAccessOwned(Principal{ID: uuid.New(), Role: domain.RoleTeacher}, ownerID),
		"teacher cannot access another user's resource")
	assert.False(t, CanAccessOwned(Principal{ID: uuid.New(), Role: domain.RoleStudent}, ownerID),
		"student cannot access another user's resource")
}
