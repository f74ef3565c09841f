package source

import (
	"net/http"

	"crawler_server/core/domain"
	"crawler_server/core/port/out"
)

// BuildSources returns the source adapters in their fixed crawl order,
// optionally filtered to an enabled subset. Order matters: it is the
// deterministic collection order the merge engine relies on.
func BuildSources(enabled []string, client *http.Client) []out.Source {
	registry := []out.Source{
		NewReviewNoteSource(client),
		NewGangnamSource(client),
		NewSeoulOubaSource(client),
	}
	if len(enabled) == 0 {
		return registry
	}

	want := make(map[domain.SourceID]bool, len(enabled))
	for _, name := range enabled {
		want[domain.SourceID(name)] = true
	}

	var sources []out.Source
	for _, src := range registry {
		if want[src.ID()] {
			sources = append(sources, src)
		}
	}
	return sources
}
