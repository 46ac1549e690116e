package search

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ErrObjectTooLarge is returned when a document cannot be brought under the
// size ceiling even after splitting. It must surface to the caller, the text
// is never silently truncated.
var ErrObjectTooLarge = errors.New("search object exceeds size ceiling")

// Split partitions the document into one or more documents that each fit
// under the ceiling. A document already within the ceiling is returned
// unchanged as a single-element slice. An oversized document keeps every
// field and receives a contiguous slice of the search text per chunk; the
// first chunk keeps the original object id, later chunks get "-2", "-3"
// suffixes in emission order.
//
// Sizes and chunk boundaries both use UTF-8 bytes, with boundaries advanced
// to rune starts so a chunk never splits a multi-byte sequence.
func (c *Conversation) Split(ceiling int) ([]Conversation, error) {
	if c.EstimateSize() <= ceiling {
		return []Conversation{*c}, nil
	}

	// Budget for text is whatever the ceiling leaves after all other
	// fields, discounted by 15% because the estimate is approximate.
	overhead := c.EstimateSize() - len(c.SearchText)
	budget := (ceiling - overhead) / 100 * 85
	if budget <= 0 {
		return nil, fmt.Errorf("%w: object %s has %d bytes of non-text fields against a ceiling of %d",
			ErrObjectTooLarge, c.ObjectID, overhead, ceiling)
	}

	chunks := splitTextChunks(c.SearchText, budget)

	documents := make([]Conversation, 0, len(chunks))
	for i, chunk := range chunks {
		document := *c
		document.ConversationSplit = splitMarker
		document.SearchText = chunk
		if i > 0 {
			document.ObjectID = c.ObjectID + "-" + strconv.Itoa(i+1)
		}
		if document.EstimateSize() > ceiling {
			return nil, fmt.Errorf("%w: chunk %s still estimates %d bytes",
				ErrObjectTooLarge, document.ObjectID, document.EstimateSize())
		}
		documents = append(documents, document)
	}

	return documents, nil
}

// splitTextChunks cuts the text into contiguous chunks of at most maxBytes
// UTF-8 bytes, never inside a multi-byte rune.
func splitTextChunks(text string, maxBytes int) []string {
	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxBytes {
			chunks = append(chunks, text)
			break
		}

		cut := maxBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			// maxBytes smaller than a single rune, fall back to a hard cut
			cut = maxBytes
		}

		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	return chunks
}
