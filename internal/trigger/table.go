package trigger

import "strings"

// Table maps keywords to actions. Lookup is case-insensitive on a single
// word and only returns enabled entries.
type Table struct {
	actions map[string]Action // keyed by lowercased keyword
	byID    map[string]Action
}

// NewTable creates a table from the given actions.
func NewTable(actions ...Action) *Table {
	t := &Table{
		actions: make(map[string]Action),
		byID:    make(map[string]Action),
	}
	for _, a := range actions {
		t.Register(a)
	}
	return t
}

// Register adds or replaces an action.
func (t *Table) Register(a Action) {
	t.actions[strings.ToLower(a.Keyword)] = a
	t.byID[a.ID] = a
}

// Lookup resolves a keyword to its enabled action.
func (t *Table) Lookup(word string) (Action, bool) {
	a, ok := t.actions[strings.ToLower(word)]
	if !ok || !a.Enabled {
		return Action{}, false
	}
	return a, true
}

// ByID returns an action regardless of its enabled flag. The translate
// special-case uses it to reach the template of a disabled entry.
func (t *Table) ByID(id string) (Action, bool) {
	a, ok := t.byID[id]
	return a, ok
}

// DefaultTable returns the standard action set, all enabled.
func DefaultTable() *Table {
	return NewTable(
		Action{Keyword: "Summarize", ID: ActionSummarize, Enabled: true, PromptTemplate: PromptSummarize},
		Action{Keyword: "Research", ID: ActionResearch, Enabled: true, PromptTemplate: PromptResearch},
		Action{Keyword: "Define", ID: ActionDefine, Enabled: true, PromptTemplate: PromptDefine},
		Action{Keyword: "Translate", ID: ActionTranslate, Enabled: true, PromptTemplate: PromptTranslate},
		Action{Keyword: "Tasks", ID: ActionTasks, RequiresListContent: true, Enabled: true, PromptTemplate: PromptTasks},
		Action{Keyword: "Related", ID: ActionRelated, Enabled: true, PromptTemplate: PromptRelated},
	)
}
