// Package audit provides the domain contract for change auditing.
// The persistence-side implementation lives in the infrastructure layer.
package audit

import (
	"context"

	appctx "logiprofit/internal/core/context"
	"logiprofit/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionStatusChange Action = "status_change"
	ActionConvert      Action = "convert"
)

// Recorder persists an audit trail of entity changes.
type Recorder interface {
	// Record stores one audit entry. Changes is marshalled to JSON by the
	// implementation and may be nil.
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes any) error
}

// NopRecorder discards all entries. Useful in tests and tooling.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, string, id.ID, Action, any) error {
	return nil
}

var _ Recorder = NopRecorder{}

// EnrichCreatedBy sets CreatedBy and UpdatedBy from the context user.
// Use in before-create hooks. No-op when no user is attached.
func EnrichCreatedBy(ctx context.Context, createdBy, updatedBy *string) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return
	}
	*createdBy = userID
	*updatedBy = userID
}

// EnrichUpdatedBy sets UpdatedBy from the context user.
// Use in before-update hooks.
func EnrichUpdatedBy(ctx context.Context, updatedBy *string) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return
	}
	*updatedBy = userID
}
