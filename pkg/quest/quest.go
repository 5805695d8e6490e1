// Package quest tracks quest completion driven by named game events.
package quest

import (
	"log/slog"

	"github.com/jwebster45206/wizard-village/pkg/dialog"
)

// Quest is one entry of the quest log. Completed never goes back to false.
type Quest struct {
	Title       string
	Description string
	Completed   bool
}

// Trigger binds an event to the quest it completes.
type Trigger struct {
	Event string
	Title string
}

// Panel is anything that displays the quest list.
type Panel interface {
	Visible() bool
	Rebuild(quests []Quest)
}

// Tracker owns the quest list and listens for events.
type Tracker struct {
	quests   []Quest
	triggers map[string][]string
	panel    Panel
	logger   *slog.Logger
}

// NewTracker creates a tracker over quests; triggers map events to titles.
func NewTracker(quests []Quest, triggers []Trigger, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		quests:   append([]Quest(nil), quests...),
		triggers: make(map[string][]string),
		logger:   logger,
	}
	for _, tr := range triggers {
		t.triggers[tr.Event] = append(t.triggers[tr.Event], tr.Title)
	}
	return t
}

// DefaultQuests are the village's starting quests.
func DefaultQuests() ([]Quest, []Trigger) {
	return []Quest{
			{Title: "meet the wizard", Description: "Find the wizard and speak with him."},
			{Title: "seek wisdom", Description: "Ask the wizard a question and hear his answer."},
		}, []Trigger{
			{Event: dialog.EventDialogOpened, Title: "meet the wizard"},
			{Event: dialog.EventReplyReceived, Title: "seek wisdom"},
		}
}

// SetPanel attaches the panel refreshed on completion.
func (t *Tracker) SetPanel(p Panel) {
	t.panel = p
}

// OnEvent completes every quest bound to name. Unknown events are ignored.
func (t *Tracker) OnEvent(name string) {
	for _, title := range t.triggers[name] {
		t.Complete(title)
	}
}

// Complete marks the quest with the given title done. It reports whether the
// quest changed state; completing twice, or an unknown title, returns false.
func (t *Tracker) Complete(title string) bool {
	for i := range t.quests {
		q := &t.quests[i]
		if q.Title != title || q.Completed {
			continue
		}
		q.Completed = true
		t.logger.Info("Quest completed", "quest", title)
		if t.panel != nil && t.panel.Visible() {
			t.panel.Rebuild(t.Quests())
		}
		return true
	}
	return false
}

// Quests returns a copy of the quest list in order.
func (t *Tracker) Quests() []Quest {
	out := make([]Quest, len(t.quests))
	copy(out, t.quests)
	return out
}
