package alerts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/modgate/modgate/domain/moderation"
	"github.com/modgate/modgate/ports"
)

func TestAlertPayloadWireShape(t *testing.T) {
	at := time.Date(2025, 5, 2, 14, 0, 0, 0, time.UTC)
	alert := ports.Alert{
		GuildID:       "g1",
		ChannelID:     "c1",
		AlertsChannel: "c9",
		AuthorID:      "u1",
		Model:         moderation.ModelSentinel,
		Labels:        []moderation.Label{moderation.LabelViolence, moderation.LabelSpam},
		Actions:       []moderation.Action{moderation.ActionDelete},
		At:            at,
	}

	data, err := json.Marshal(newAlertPayload(alert))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if wire["guild_id"] != "g1" || wire["alerts_channel_id"] != "c9" {
		t.Errorf("payload = %v", wire)
	}
	if wire["model"] != "sentinel" {
		t.Errorf("model = %v", wire["model"])
	}
	labels, ok := wire["labels"].([]any)
	if !ok || len(labels) != 2 || labels[0] != "V" {
		t.Errorf("labels = %v", wire["labels"])
	}
	actions, ok := wire["actions"].([]any)
	if !ok || len(actions) != 1 || actions[0] != "delete" {
		t.Errorf("actions = %v", wire["actions"])
	}
}

func TestSubjectPrefix(t *testing.T) {
	if SubjectPrefix+"g1" != "moderation.alert.g1" {
		t.Errorf("subject = %q", SubjectPrefix+"g1")
	}
}
