package store

import (
	"sort"

	"github.com/homeboard/core/internal/domain/entities"
)

// WidgetLayout returns the layout entries sorted by position
func (s *Store) WidgetLayout() []entities.WidgetLayoutEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layout := append([]entities.WidgetLayoutEntry(nil), s.state.WidgetLayout...)
	sort.Slice(layout, func(i, j int) bool { return layout[i].Position < layout[j].Position })
	return layout
}

// MoveWidget reorders the layout by removing the source entry and
// reinserting it before the target's post-removal index, then reassigning
// position = index across the whole sequence. Positions are always a
// contiguous 0..N-1 permutation afterwards; swapping position fields
// instead would leave duplicates. A missing source or target, or
// source == target, is a no-op.
func (s *Store) MoveWidget(sourceID, targetID string) {
	if sourceID == targetID {
		return
	}
	s.mutate(func(st *Snapshot) {
		st.WidgetLayout = reorderLayout(st.WidgetLayout, sourceID, targetID)
	})
}

func reorderLayout(layout []entities.WidgetLayoutEntry, sourceID, targetID string) []entities.WidgetLayoutEntry {
	ordered := append([]entities.WidgetLayoutEntry(nil), layout...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	sourceIdx := -1
	targetExists := false
	for i, w := range ordered {
		if w.ID == sourceID {
			sourceIdx = i
		}
		if w.ID == targetID {
			targetExists = true
		}
	}
	if sourceIdx < 0 || !targetExists {
		return layout
	}

	source := ordered[sourceIdx]
	ordered = append(ordered[:sourceIdx], ordered[sourceIdx+1:]...)

	// Target index is recomputed against the shortened slice, so the
	// source lands before the target's new location rather than swapping.
	targetIdx := 0
	for i, w := range ordered {
		if w.ID == targetID {
			targetIdx = i
			break
		}
	}

	ordered = append(ordered, entities.WidgetLayoutEntry{})
	copy(ordered[targetIdx+1:], ordered[targetIdx:])
	ordered[targetIdx] = source

	for i := range ordered {
		ordered[i].Position = i
	}
	return ordered
}

// SetWidgetEnabled flips a widget slot on or off; no-op when id is absent.
// The feature toggles are a projection over these flags, so the per-widget
// switch and the settings-tab switches can never diverge.
func (s *Store) SetWidgetEnabled(id string, enabled bool) {
	s.mutate(func(st *Snapshot) {
		for i := range st.WidgetLayout {
			if st.WidgetLayout[i].ID == id {
				st.WidgetLayout[i].Enabled = enabled
				return
			}
		}
	})
}

// SetWidgetSize changes a widget slot's size; no-op when id is absent
func (s *Store) SetWidgetSize(id string, size entities.WidgetSize) {
	s.mutate(func(st *Snapshot) {
		for i := range st.WidgetLayout {
			if st.WidgetLayout[i].ID == id {
				st.WidgetLayout[i].Size = size
				return
			}
		}
	})
}

// TogglesPatch holds partial feature-toggle updates; nil fields are
// left untouched
type TogglesPatch struct {
	ShowWeather  *bool `json:"showWeather"`
	ShowTasks    *bool `json:"showTasks"`
	ShowEvents   *bool `json:"showEvents"`
	ShowCalendar *bool `json:"showCalendar"`
	ShowFunFacts *bool `json:"showFunFacts"`
	ShowSystem   *bool `json:"showSystem"`
}

// Toggles returns the feature toggles derived from the widget layout
func (s *Store) Toggles() entities.FeatureToggles {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derivedToggles(s.state.WidgetLayout)
}

// SetToggles shallow-merges partial toggle updates by writing through to
// the enabled flag of every layout entry of the matching widget type.
func (s *Store) SetToggles(patch TogglesPatch) {
	s.mutate(func(st *Snapshot) {
		apply := func(wt entities.WidgetType, v *bool) {
			if v == nil {
				return
			}
			for i := range st.WidgetLayout {
				if st.WidgetLayout[i].Type == wt {
					st.WidgetLayout[i].Enabled = *v
				}
			}
		}
		apply(entities.WidgetWeather, patch.ShowWeather)
		apply(entities.WidgetTasks, patch.ShowTasks)
		apply(entities.WidgetEvents, patch.ShowEvents)
		apply(entities.WidgetCalendar, patch.ShowCalendar)
		apply(entities.WidgetFunFacts, patch.ShowFunFacts)
		apply(entities.WidgetSystem, patch.ShowSystem)
	})
}

// derivedToggles projects the layout's enabled flags onto the toggle set.
// A widget type with no layout entry stays off.
func derivedToggles(layout []entities.WidgetLayoutEntry) entities.FeatureToggles {
	var ft entities.FeatureToggles
	for _, w := range layout {
		if !w.Enabled {
			continue
		}
		switch w.Type {
		case entities.WidgetWeather:
			ft.ShowWeather = true
		case entities.WidgetTasks:
			ft.ShowTasks = true
		case entities.WidgetEvents:
			ft.ShowEvents = true
		case entities.WidgetCalendar:
			ft.ShowCalendar = true
		case entities.WidgetFunFacts:
			ft.ShowFunFacts = true
		case entities.WidgetSystem:
			ft.ShowSystem = true
		}
	}
	return ft
}

// normalizeLayout sorts by position and reassigns contiguous positions,
// repairing gaps or duplicates from an older persisted snapshot.
func normalizeLayout(layout []entities.WidgetLayoutEntry) []entities.WidgetLayoutEntry {
	ordered := append([]entities.WidgetLayoutEntry(nil), layout...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	for i := range ordered {
		ordered[i].Position = i
	}
	return ordered
}
