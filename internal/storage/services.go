// Package storage is the relational read side: it loads service graphs
// (service, offers, compatibilities) in paged, eager batches for indexing.
package storage

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	ragerrors "github.com/HezinTUKE/car-service/internal/common/errors"
	"github.com/HezinTUKE/car-service/internal/common/logger"
	"github.com/HezinTUKE/car-service/internal/models"
)

const (
	countServicesQuery = `SELECT COUNT(*) FROM services`

	listServicesQuery = `
		SELECT id, organization_id, name, description, country, city, street,
		       house_number, postal_code, phone_number, email,
		       longitude, latitude, original_full_address
		FROM services
		ORDER BY id
		LIMIT $1 OFFSET $2`

	listOffersQuery = `
		SELECT id, service_id, offer_type, description, currency,
		       base_price, sale
		FROM offers
		WHERE service_id = ANY($1)
		ORDER BY service_id, id`

	listCompatibilitiesQuery = `
		SELECT id, offer_id, car_type, car_brand
		FROM offer_car_compatibilities
		WHERE offer_id = ANY($1)
		ORDER BY offer_id, id`
)

type ServiceStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewServiceStore(db *sql.DB, log logger.Logger) *ServiceStore {
	return &ServiceStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "storage"}),
	}
}

func (s *ServiceStore) CountServices(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, countServicesQuery).Scan(&count); err != nil {
		return 0, ragerrors.NewQueryExecutionFailedError("count_services", err)
	}
	return count, nil
}

// ListServicesPage loads one page of services with their offers and each
// offer's compatibility rows. Three batched queries, never one per row.
func (s *ServiceStore) ListServicesPage(ctx context.Context, limit, offset int) ([]models.ServiceGraph, error) {
	services, err := s.listServices(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, nil
	}

	serviceIDs := make([]string, 0, len(services))
	for _, svc := range services {
		serviceIDs = append(serviceIDs, svc.ID)
	}

	offersByService, offerIDs, err := s.listOffers(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	compatByOffer := map[string][]models.OfferCarCompatibility{}
	if len(offerIDs) > 0 {
		compatByOffer, err = s.listCompatibilities(ctx, offerIDs)
		if err != nil {
			return nil, err
		}
	}

	graphs := make([]models.ServiceGraph, 0, len(services))
	for _, svc := range services {
		offers := offersByService[svc.ID]
		compat := make(map[string][]models.OfferCarCompatibility, len(offers))
		for _, offer := range offers {
			if rows, ok := compatByOffer[offer.ID]; ok {
				compat[offer.ID] = rows
			}
		}
		graphs = append(graphs, models.ServiceGraph{
			Service:         svc,
			Offers:          offers,
			Compatibilities: compat,
		})
	}
	return graphs, nil
}

func (s *ServiceStore) listServices(ctx context.Context, limit, offset int) ([]models.Service, error) {
	rows, err := s.db.QueryContext(ctx, listServicesQuery, limit, offset)
	if err != nil {
		return nil, ragerrors.NewQueryExecutionFailedError("list_services", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(
			&svc.ID, &svc.OrganizationID, &svc.Name, &svc.Description,
			&svc.Country, &svc.City, &svc.Street, &svc.HouseNumber,
			&svc.PostalCode, &svc.PhoneNumber, &svc.Email,
			&svc.Longitude, &svc.Latitude, &svc.OriginalFullAddress,
		); err != nil {
			return nil, ragerrors.NewQueryExecutionFailedError("list_services", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, ragerrors.NewQueryExecutionFailedError("list_services", err)
	}
	return services, nil
}

func (s *ServiceStore) listOffers(ctx context.Context, serviceIDs []string) (map[string][]models.Offer, []string, error) {
	rows, err := s.db.QueryContext(ctx, listOffersQuery, pq.Array(serviceIDs))
	if err != nil {
		return nil, nil, ragerrors.NewQueryExecutionFailedError("list_offers", err)
	}
	defer rows.Close()

	offersByService := make(map[string][]models.Offer)
	var offerIDs []string
	for rows.Next() {
		var offer models.Offer
		if err := rows.Scan(
			&offer.ID, &offer.ServiceID, &offer.OfferType, &offer.Description,
			&offer.Currency, &offer.BasePrice, &offer.Sale,
		); err != nil {
			return nil, nil, ragerrors.NewQueryExecutionFailedError("list_offers", err)
		}
		offersByService[offer.ServiceID] = append(offersByService[offer.ServiceID], offer)
		offerIDs = append(offerIDs, offer.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, ragerrors.NewQueryExecutionFailedError("list_offers", err)
	}
	return offersByService, offerIDs, nil
}

func (s *ServiceStore) listCompatibilities(ctx context.Context, offerIDs []string) (map[string][]models.OfferCarCompatibility, error) {
	rows, err := s.db.QueryContext(ctx, listCompatibilitiesQuery, pq.Array(offerIDs))
	if err != nil {
		return nil, ragerrors.NewQueryExecutionFailedError("list_compatibilities", err)
	}
	defer rows.Close()

	compatByOffer := make(map[string][]models.OfferCarCompatibility)
	for rows.Next() {
		var row models.OfferCarCompatibility
		if err := rows.Scan(&row.ID, &row.OfferID, &row.CarType, &row.CarBrand); err != nil {
			return nil, ragerrors.NewQueryExecutionFailedError("list_compatibilities", err)
		}
		compatByOffer[row.OfferID] = append(compatByOffer[row.OfferID], row)
	}
	if err := rows.Err(); err != nil {
		return nil, ragerrors.NewQueryExecutionFailedError("list_compatibilities", err)
	}
	return compatByOffer, nil
}
