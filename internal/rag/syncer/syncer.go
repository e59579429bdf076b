// Package syncer keeps the search index in step with the relational store:
// one denormalized document per service, replaced wholesale on every sync.
package syncer

import (
	"context"

	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/common/metrics"
	"github.com/HezinTUKE/car-service/internal/models"
	"github.com/HezinTUKE/car-service/internal/rag/embedding"
	"github.com/HezinTUKE/car-service/internal/rag/index"
)

// ServiceLister pages through the relational store with offers and
// compatibilities eagerly loaded.
type ServiceLister interface {
	CountServices(ctx context.Context) (int, error)
	ListServicesPage(ctx context.Context, limit, offset int) ([]models.ServiceGraph, error)
}

type Syncer struct {
	embedder embedding.Provider
	upserter index.Upserter
	store    ServiceLister
	pageSize int
	logger   logger.Logger
}

func New(embedder embedding.Provider, upserter index.Upserter, store ServiceLister, pageSize int, log logger.Logger) *Syncer {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Syncer{
		embedder: embedder,
		upserter: upserter,
		store:    store,
		pageSize: pageSize,
		logger:   log.WithFields(map[string]interface{}{"component": "syncer"}),
	}
}

// Sync renders, embeds and upserts one service's document. The document id
// is the service id, so a second sync for the same service replaces the
// first document rather than adding a new one.
func (s *Syncer) Sync(ctx context.Context, graph *models.ServiceGraph) error {
	content := renderContent(graph)

	vector, err := s.embedder.Embed(ctx, content)
	if err != nil {
		metrics.DocumentsSynced.WithLabelValues("failed").Inc()
		return err
	}

	doc := s.buildDocument(graph, content, vector)
	if err := s.upserter.Upsert(ctx, graph.Service.ID, doc); err != nil {
		metrics.DocumentsSynced.WithLabelValues("failed").Inc()
		return err
	}

	metrics.DocumentsSynced.WithLabelValues("synced").Inc()
	s.logger.Debug("service document synced", map[string]interface{}{
		"serviceId": graph.Service.ID,
		"offers":    len(graph.Offers),
	})
	return nil
}

// Backfill pages through every service and syncs each one. The first error
// aborts the run; documents already synced stay in place, and re-running is
// safe because sync is a full replacement.
func (s *Syncer) Backfill(ctx context.Context) (int, error) {
	total, err := s.store.CountServices(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for offset := 0; offset < total; offset += s.pageSize {
		page, err := s.store.ListServicesPage(ctx, s.pageSize, offset)
		if err != nil {
			return synced, err
		}

		for i := range page {
			if err := s.Sync(ctx, &page[i]); err != nil {
				return synced, err
			}
			synced++
		}
	}

	s.logger.Info("backfill complete", map[string]interface{}{"services": synced})
	return synced, nil
}

func (s *Syncer) buildDocument(graph *models.ServiceGraph, content string, vector []float32) *index.SearchDocument {
	offers := make([]index.OfferDocument, 0, len(graph.Offers))
	for _, offer := range graph.Offers {
		rows := graph.Compatibilities[offer.ID]
		compat := make([]index.CarCompatibilityDocument, 0, len(rows))
		for _, row := range rows {
			compat = append(compat, index.CarCompatibilityDocument{
				CarType:  row.CarType,
				CarBrand: row.CarBrand,
			})
		}
		offers = append(offers, index.OfferDocument{
			BasePrice:          offer.BasePrice,
			Sale:               offer.Sale,
			Currency:           offer.Currency,
			OfferType:          offer.OfferType,
			CarCompatibilities: compat,
		})
	}

	return &index.SearchDocument{
		Content:   content,
		Embedding: vector,
		Source:    models.SourcePostgreSQL,
		Name:      graph.Service.Name,
		Point:     index.GeoPoint{Lat: graph.Service.Latitude, Lon: graph.Service.Longitude},
		City:      graph.Service.City,
		Country:   graph.Service.Country,
		Offers:    offers,
	}
}
