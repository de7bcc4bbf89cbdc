package types

// SourceKind classifies where a citation comes from. Closed set; producers
// must normalize before submission.
type SourceKind string

const (
	SourceScientificPaper SourceKind = "scientific_paper"
	SourceBook            SourceKind = "book"
	SourceArticle         SourceKind = "article"
	SourceDatabase        SourceKind = "database"
	SourceExpertConsensus SourceKind = "expert_consensus"
	SourceWikipedia       SourceKind = "wikipedia"
	SourceWikidata        SourceKind = "wikidata"
	SourceOther           SourceKind = "other"
)

var sourceKinds = map[SourceKind]struct{}{
	SourceScientificPaper: {},
	SourceBook:            {},
	SourceArticle:         {},
	SourceDatabase:        {},
	SourceExpertConsensus: {},
	SourceWikipedia:       {},
	SourceWikidata:        {},
	SourceOther:           {},
}

func (k SourceKind) Valid() bool {
	_, ok := sourceKinds[k]
	return ok
}
