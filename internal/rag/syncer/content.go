package syncer

import (
	"fmt"
	"strings"

	"github.com/HezinTUKE/car-service/internal/models"
)

// renderContent produces the human-readable summary that gets embedded and
// stored as the document's content field. It covers every field semantic
// search should match on: name, description, address and each offer's
// category, price and car compatibility groups.
func renderContent(graph *models.ServiceGraph) string {
	var sb strings.Builder

	svc := graph.Service
	fmt.Fprintf(&sb, "Service Name: %s\n\nDescription: %s\n\nAddress: %s\n", svc.Name, svc.Description, svc.OriginalFullAddress)

	if len(graph.Offers) > 0 {
		sb.WriteString("Offers:\n")
	}

	for i, offer := range graph.Offers {
		fmt.Fprintf(&sb, "- Offer %d/%d:\n Offer type: %s\n Description: %s\n, Price: %g %s\n",
			i+1, len(graph.Offers), offer.OfferType, offer.Description, offer.BasePrice, offer.Currency)

		fmt.Fprintf(&sb, "Compatible Cars:\n %s\n\n", renderCompatibilities(graph.Compatibilities[offer.ID]))
	}

	return sb.String()
}

// renderCompatibilities groups an offer's compatibility rows by car type,
// preserving first-seen type order.
func renderCompatibilities(rows []models.OfferCarCompatibility) string {
	typeOrder := make([]models.CarType, 0, len(rows))
	brandsByType := make(map[models.CarType][]string, len(rows))

	for _, row := range rows {
		if _, seen := brandsByType[row.CarType]; !seen {
			typeOrder = append(typeOrder, row.CarType)
		}
		brandsByType[row.CarType] = append(brandsByType[row.CarType], string(row.CarBrand))
	}

	lines := make([]string, 0, len(typeOrder))
	for _, carType := range typeOrder {
		lines = append(lines, fmt.Sprintf("Car type: %s, Car Brands: %s", carType, strings.Join(brandsByType[carType], ",")))
	}
	return strings.Join(lines, "\n")
}
