package comment

import (
	"testing"

	"github.com/quillpress/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTargetStatus(t *testing.T) {
	cases := map[string]models.CommentStatus{
		ActionApprove:   models.CommentApproved,
		ActionUnapprove: models.CommentPending,
		ActionSpam:      models.CommentSpam,
		ActionUnspam:    models.CommentPending,
		ActionTrash:     models.CommentTrash,
		ActionRestore:   models.CommentPending,
	}
	for action, want := range cases {
		got, ok := TargetStatus(action)
		assert.True(t, ok, action)
		assert.Equal(t, want, got, action)
	}

	_, ok := TargetStatus(ActionDelete)
	assert.False(t, ok)
	_, ok = TargetStatus("promote")
	assert.False(t, ok)
}

func TestIsKnownAction(t *testing.T) {
	for _, a := range []string{
		ActionApprove, ActionUnapprove, ActionSpam,
		ActionUnspam, ActionTrash, ActionRestore, ActionDelete,
	} {
		assert.True(t, IsKnownAction(a), a)
	}
	assert.False(t, IsKnownAction("purge"))
	assert.False(t, IsKnownAction(""))
}

func TestHardDeleteOnlyFromSoftDeletedStates(t *testing.T) {
	deletable := []models.CommentStatus{models.CommentSpam, models.CommentTrash}
	for _, st := range deletable {
		c := models.CommentModel{Status: st}
		assert.True(t, c.IsSoftDeleted(), st)
	}
	for _, st := range []models.CommentStatus{models.CommentPending, models.CommentApproved} {
		c := models.CommentModel{Status: st}
		assert.False(t, c.IsSoftDeleted(), st)
	}
}
