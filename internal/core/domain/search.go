package domain

import "sort"

// MatchSet is a de-duplicated set of document identifiers.
// Iteration order is unspecified; use Sorted for stable output.
type MatchSet map[DocumentID]struct{}

// NewMatchSet creates a set containing ids.
func NewMatchSet(ids ...DocumentID) MatchSet {
	s := make(MatchSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set.
func (s MatchSet) Add(id DocumentID) {
	s[id] = struct{}{}
}

// Has reports whether id is a member.
func (s MatchSet) Has(id DocumentID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s MatchSet) Len() int {
	return len(s)
}

// Union returns a new set holding the members of s and other.
func (s MatchSet) Union(other MatchSet) MatchSet {
	out := make(MatchSet, len(s)+len(other))
	for id := range s {
		out.Add(id)
	}
	for id := range other {
		out.Add(id)
	}
	return out
}

// Sorted returns the members in lexical order.
func (s MatchSet) Sorted() []DocumentID {
	ids := make([]DocumentID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RetrievalResult is the outcome of a single retrieval.
type RetrievalResult struct {
	// Matches is the union of the name and content tiers.
	Matches MatchSet

	// NameMatches are identifiers whose file name contains the query.
	NameMatches MatchSet

	// ContentMatches are identifiers whose extracted text matched.
	ContentMatches MatchSet

	// Skipped records documents whose content could not be extracted.
	Skipped map[DocumentID]error

	// Listing is the archive snapshot the retrieval ran against.
	Listing []DocumentID
}

// ImageSearchResult is the outcome of searching with a photographed document.
type ImageSearchResult struct {
	// Text is the recognised text. Empty when nothing was recognised.
	Text string

	// NoText is true when recognition produced no usable text.
	// No retrieval is attempted in that case.
	NoText bool

	// Retrieval is the search outcome, nil when NoText is set.
	Retrieval *RetrievalResult
}
