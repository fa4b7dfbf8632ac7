// Package usersink bridges activity events into a go-users activity sink.
package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/refugehq/crisis-admin/pkg/activity"
)

// Sink is the slice of the go-users activity logger the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps activity events onto go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify implements activity.Hook. Events without a verb or sink are dropped;
// identifier fields that are not valid UUIDs map to the zero UUID rather than
// failing the mutation that emitted them.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	normalized := activity.NormalizeEvent(evt)
	if normalized.Verb == "" {
		return nil
	}
	data := make(map[string]any, len(normalized.Metadata)+2)
	for key, value := range normalized.Metadata {
		data[key] = value
	}
	if normalized.DefinitionCode != "" {
		data["definition_code"] = normalized.DefinitionCode
	}
	if len(normalized.Recipients) > 0 {
		data["recipients"] = normalized.Recipients
	}
	record := types.ActivityRecord{
		ActorID:    parseID(normalized.ActorID),
		UserID:     parseID(normalized.UserID),
		TenantID:   parseID(normalized.TenantID),
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		OccurredAt: normalized.OccurredAt,
		Data:       data,
	}
	return h.Sink.Log(ctx, record)
}

func parseID(value string) uuid.UUID {
	if value == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}
