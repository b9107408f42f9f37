package businessflow

import (
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/utils"
)

// Record access policy.
//
// Two deliberately different rules coexist here and must not be unified:
//
//   - CanRetrieve governs single-record reads. Staff may read any record,
//     so support can inspect customer data without mutating it.
//   - IsOwner governs writes and deletes. Only the owner may change or
//     remove a record. Staff status grants no write access.
//
// A third rule, CanListAll, widens list endpoints for staff, holders of
// the view_all_mailings permission, and members of any group.

// CanRetrieve reports whether the user may read a record owned by ownerID.
// Owners and staff may; everyone else may not.
func CanRetrieve(user *models.User, ownerID uint) bool {
	if user == nil {
		return false
	}
	return user.ID == ownerID || utils.IsTrue(user.IsStaff)
}

// IsOwner reports whether the user owns the record. This is the only
// check consulted for updates and deletes.
func IsOwner(user *models.User, ownerID uint) bool {
	if user == nil {
		return false
	}
	return user.ID == ownerID
}

// CanListAll reports whether list endpoints should return every record
// rather than only the user's own.
func CanListAll(user *models.User) bool {
	if user == nil {
		return false
	}
	if utils.IsTrue(user.IsStaff) {
		return true
	}
	if user.HasPerm(utils.PermViewAllMailings) {
		return true
	}
	return user.InAnyGroup()
}
