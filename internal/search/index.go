package search

import (
	"fmt"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/rs/zerolog"
)

// Index wraps the hosted search index. Documents for a conversation are
// always written as a full overwrite, never patched.
type Index struct {
	index  *search.Index
	logger zerolog.Logger
}

// NewIndex creates a client for the given application and index.
func NewIndex(appID, apiKey, indexName string, logger zerolog.Logger) *Index {
	client := search.NewClient(appID, apiKey)
	return &Index{
		index:  client.InitIndex(indexName),
		logger: logger,
	}
}

// SaveDocument writes a single document to the index.
func (i *Index) SaveDocument(document Conversation) error {
	if _, err := i.index.SaveObject(document); err != nil {
		return fmt.Errorf("failed to save search object %s: %w", document.ObjectID, err)
	}
	return nil
}

// SaveDocuments writes a batch of documents to the index, used when a
// conversation split into several objects.
func (i *Index) SaveDocuments(documents []Conversation) error {
	if len(documents) == 0 {
		return nil
	}
	if _, err := i.index.SaveObjects(documents); err != nil {
		return fmt.Errorf("failed to save %d search objects for %s: %w", len(documents), documents[0].ObjectID, err)
	}
	i.logger.Debug().Int("count", len(documents)).Str("object_id", documents[0].ObjectID).Msg("Saved search objects")
	return nil
}
