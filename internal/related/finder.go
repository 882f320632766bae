package related

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"inkscan/internal/note/repository"
	"inkscan/pkg/qdrant"
)

var tagPattern = regexp.MustCompile(`#([A-Za-z0-9_][\w/-]*)`)

// Find resolves a related-notes trigger into a wikilink list, one note per
// line. Tag matches rank ahead of semantic ones; both strategies are best
// effort, so a failing backend degrades the list instead of the pipeline.
func (f *Finder) Find(ctx context.Context, content string, tags []string) (string, error) {
	crit := buildCriteria(content, tags)

	// Strategy 1: exact tag intersection (fast, precise)
	tagMatches, err := f.searchByTags(ctx, crit)
	if err != nil {
		f.l.Warnf(ctx, "related: tag search failed: %v", err)
	}

	// Strategy 2: semantic search over the vector index (fuzzy, broader)
	semanticMatches, err := f.searchSemantic(ctx, crit)
	if err != nil {
		f.l.Warnf(ctx, "related: semantic search failed: %v", err)
	}

	matches := mergeMatches(tagMatches, semanticMatches)
	if len(matches) > f.limit {
		matches = matches[:f.limit]
	}

	f.l.Infof(ctx, "related: %d match(es) for %q", len(matches), snippet(content))
	return formatWikilinks(matches), nil
}

// buildCriteria extracts explicit #tags and significant keywords from the
// trigger content. Caller-supplied tags rank first.
func buildCriteria(content string, tags []string) criteria {
	crit := criteria{query: strings.TrimSpace(content)}

	seen := make(map[string]bool)
	addTag := func(raw string) {
		tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
		if tag != "" && !seen[tag] {
			crit.tags = append(crit.tags, tag)
			seen[tag] = true
		}
	}
	for _, t := range tags {
		addTag(t)
	}
	for _, m := range tagPattern.FindAllStringSubmatch(content, -1) {
		addTag(m[1])
	}

	// Keywords verify semantic hits against the actual note text.
	stripped := tagPattern.ReplaceAllString(content, "")
	for _, w := range strings.Fields(strings.ToLower(stripped)) {
		w = strings.Trim(w, ".,;:!?()[]{}\"'")
		if len([]rune(w)) >= 4 {
			crit.keywords = append(crit.keywords, w)
		}
	}
	return crit
}

// searchByTags returns notes sharing at least one tag with the criteria.
func (f *Finder) searchByTags(ctx context.Context, crit criteria) ([]Match, error) {
	if len(crit.tags) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var matches []Match
	for _, tag := range crit.tags {
		notes, err := f.repo.ListNotes(ctx, repository.ListNotesOptions{
			Tag:   tag,
			Limit: searchLimit,
		})
		if err != nil {
			return matches, fmt.Errorf("list notes by tag %q: %w", tag, err)
		}
		for _, n := range notes {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			matches = append(matches, Match{
				NoteID:      n.ID,
				Title:       n.Title,
				MatchScore:  1.0, // Exact match
				MatchReason: "exact-tag: " + tag,
			})
		}
	}
	return matches, nil
}

// searchSemantic embeds the query and searches the vector index. Each hit
// is verified against the stored note content to avoid false positives.
func (f *Finder) searchSemantic(ctx context.Context, crit criteria) ([]Match, error) {
	if f.embedder == nil || f.vector == nil || crit.query == "" {
		return nil, nil
	}

	vector, err := f.embedder.EmbedQuery(ctx, crit.query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vector) == 0 {
		return nil, nil
	}

	hits, err := f.vector.Search(ctx, f.collection, qdrant.SearchRequest{
		Vector:      vector,
		Limit:       searchLimit,
		WithPayload: true,
	})
	if err != nil {
		return nil, fmt.Errorf("search points: %w", err)
	}

	var matches []Match
	for _, point := range hits {
		noteID, _ := point.Payload["note_id"].(string)
		if noteID == "" {
			continue
		}

		n, err := f.repo.GetNote(ctx, noteID)
		if err != nil {
			f.l.Warnf(ctx, "related: fetch note %s: %v", noteID, err)
			continue
		}

		if !verifyKeywords(n.Content, crit.keywords) {
			continue
		}

		matches = append(matches, Match{
			NoteID:      n.ID,
			Title:       n.Title,
			MatchScore:  point.Score,
			MatchReason: "semantic",
		})
	}
	return matches, nil
}

// verifyKeywords requires at least one criteria keyword in the note text.
// With no keywords to check, the vector score stands on its own.
func verifyKeywords(content string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	contentLower := strings.ToLower(content)
	for _, kw := range keywords {
		if strings.Contains(contentLower, kw) {
			return true
		}
	}
	return false
}

// mergeMatches deduplicates by note ID, keeping tag matches ahead of
// semantic ones.
func mergeMatches(tagMatches, semanticMatches []Match) []Match {
	seen := make(map[string]bool)
	merged := make([]Match, 0, len(tagMatches)+len(semanticMatches))

	for _, m := range tagMatches {
		if !seen[m.NoteID] {
			merged = append(merged, m)
			seen[m.NoteID] = true
		}
	}
	for _, m := range semanticMatches {
		if !seen[m.NoteID] {
			merged = append(merged, m)
			seen[m.NoteID] = true
		}
	}
	return merged
}

// formatWikilinks renders matches as an Obsidian-style link list.
func formatWikilinks(matches []Match) string {
	if len(matches) == 0 {
		return ""
	}
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Title != "" && m.Title != m.NoteID {
			lines = append(lines, fmt.Sprintf("- [[%s|%s]]", m.NoteID, m.Title))
		} else {
			lines = append(lines, fmt.Sprintf("- [[%s]]", m.NoteID))
		}
	}
	return strings.Join(lines, "\n")
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return s
}
