package user

import (
	"testing"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestTargetStatus(t *testing.T) {
	cases := map[string]models.UserStatus{
		ActionActivate:   models.UserActive,
		ActionUnsuspend:  models.UserActive,
		ActionDeactivate: models.UserInactive,
		ActionSuspend:    models.UserSuspended,
	}
	for action, want := range cases {
		got, ok := TargetStatus(action)
		assert.True(t, ok, action)
		assert.Equal(t, want, got, action)
	}

	_, ok := TargetStatus("ban")
	assert.False(t, ok)
}

func TestValidateEmail(t *testing.T) {
	for _, good := range []string{"a@b.co", "first.last@example.org", " padded@example.com "} {
		assert.NoError(t, validateEmail(good), good)
	}
	for _, bad := range []string{"", "plain", "@nouser.com", "user@", "user@nodot"} {
		err := validateEmail(bad)
		assert.True(t, apperr.Is(err, apperr.KindValidation), bad)
	}
}

// The self-action guards run before any store access, so a service without
// a store still exercises them.

func TestTransitionRejectsOwnAccount(t *testing.T) {
	svc := NewService(nil, nil)
	actor := middleware.NewActorForTest("u1", models.PermManageUsers)

	err := svc.Transition(actor, "u1", ActionSuspend, "127.0.0.1")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestDeleteRejectsOwnAccount(t *testing.T) {
	svc := NewService(nil, nil)
	actor := middleware.NewActorForTest("u1", models.PermManageUsers, models.PermDeleteUsers)

	err := svc.Delete(actor, "u1", "127.0.0.1")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestBulkTransitionGuards(t *testing.T) {
	svc := NewService(nil, nil)
	actor := middleware.NewActorForTest("u1", models.PermManageUsers, models.PermDeleteUsers)

	t.Run("own id anywhere in the batch aborts it", func(t *testing.T) {
		err := svc.BulkTransition(actor, []string{"u2", "u1", "u3"}, ActionSuspend, "")
		assert.True(t, apperr.Is(err, apperr.KindForbidden))
	})

	t.Run("empty batch", func(t *testing.T) {
		err := svc.BulkTransition(actor, nil, ActionSuspend, "")
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("unknown action", func(t *testing.T) {
		err := svc.BulkTransition(actor, []string{"u2"}, "ban", "")
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("bulk delete needs the delete permission", func(t *testing.T) {
		limited := middleware.NewActorForTest("u1", models.PermManageUsers)
		err := svc.BulkTransition(limited, []string{"u2"}, ActionDelete, "")
		assert.True(t, apperr.Is(err, apperr.KindForbidden))
	})
}

func TestIsProtectedRole(t *testing.T) {
	assert.True(t, models.IsProtectedRole(models.RoleAdministrator))
	assert.True(t, models.IsProtectedRole(models.RoleSubscriber))
	assert.False(t, models.IsProtectedRole("editor"))
	assert.False(t, models.IsProtectedRole("Administrator"))
}
