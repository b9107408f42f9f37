package businessflow

import (
	"testing"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/stretchr/testify/assert"
)

func makeUser(id uint, staff bool, groups ...models.Group) *models.User {
	return &models.User{
		ID:       id,
		IsStaff:  utils.ToPtr(staff),
		IsActive: utils.ToPtr(true),
		Groups:   groups,
	}
}

func groupWithPerm(codename string) models.Group {
	return models.Group{
		Name: "managers",
		Permissions: []models.Permission{
			{Codename: codename, Name: "Can view all mailings"},
		},
	}
}

func TestCanRetrieve(t *testing.T) {
	t.Run("owner can retrieve own record", func(t *testing.T) {
		user := makeUser(7, false)
		assert.True(t, CanRetrieve(user, 7))
	})

	t.Run("staff can retrieve foreign record", func(t *testing.T) {
		staff := makeUser(1, true)
		assert.True(t, CanRetrieve(staff, 99))
	})

	t.Run("non-owner non-staff cannot retrieve", func(t *testing.T) {
		user := makeUser(7, false)
		assert.False(t, CanRetrieve(user, 8))
	})

	t.Run("nil user cannot retrieve", func(t *testing.T) {
		assert.False(t, CanRetrieve(nil, 1))
	})
}

func TestIsOwner(t *testing.T) {
	t.Run("owner passes", func(t *testing.T) {
		user := makeUser(7, false)
		assert.True(t, IsOwner(user, 7))
	})

	t.Run("staff does not pass for foreign record", func(t *testing.T) {
		// Staff may read foreign records but never write them.
		staff := makeUser(1, true)
		assert.True(t, CanRetrieve(staff, 42))
		assert.False(t, IsOwner(staff, 42))
	})

	t.Run("nil user does not pass", func(t *testing.T) {
		assert.False(t, IsOwner(nil, 1))
	})
}

func TestCanListAll(t *testing.T) {
	t.Run("staff sees all", func(t *testing.T) {
		assert.True(t, CanListAll(makeUser(1, true)))
	})

	t.Run("view permission sees all", func(t *testing.T) {
		user := makeUser(2, false, groupWithPerm(utils.PermViewAllMailings))
		assert.True(t, CanListAll(user))
	})

	t.Run("any group membership sees all", func(t *testing.T) {
		user := makeUser(3, false, models.Group{Name: "support"})
		assert.True(t, CanListAll(user))
	})

	t.Run("plain user sees only own records", func(t *testing.T) {
		assert.False(t, CanListAll(makeUser(4, false)))
	})

	t.Run("nil user sees nothing extra", func(t *testing.T) {
		assert.False(t, CanListAll(nil))
	})
}
