package memory

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/routemanager/internal/domain/model"
)

// Fixtures seeds a Store. IDs given here are kept; zero IDs are assigned.
type Fixtures struct {
	Routes   []model.Route
	Clients  []model.Client
	Products []model.Product
}

// DemoFixtures returns the catalog served in offline mode.
func DemoFixtures() Fixtures {
	price := decimal.RequireFromString
	return Fixtures{
		Routes: []model.Route{
			{ID: 1, Name: "Ruta Centro", Salesperson: "Luis Hernández"},
			{ID: 2, Name: "Ruta Norte", Salesperson: "Marta Ríos"},
			{ID: 3, Name: "Ruta Sur", Salesperson: "Jorge Salinas"},
		},
		Clients: []model.Client{
			{ID: 1, Name: "Abarrotes Paty", Phone: "33 1234 5678", Address: "Av. Juárez 120, Centro", RouteID: 1},
			{ID: 2, Name: "Tienda Don Beto", Phone: "33 2345 6789", Address: "Calle Hidalgo 45, Norte", RouteID: 2},
			{ID: 3, Name: "Minisúper La Esquina", Phone: "33 3456 7890", Address: "Blvd. Sur 800", RouteID: 3},
			{ID: 4, Name: "Cremería Lupita", Phone: "33 4567 8901", Address: "Mercado Corona local 12", RouteID: 1},
			{ID: 5, Name: "Cafetería El Portal", Phone: "", Address: "Plaza Tapatía 3"},
		},
		Products: []model.Product{
			{ID: 1, Name: "Refresco Cola 2L", SKU: "RF-COLA-2L", Category: "Bebidas", Price: price("45.00"), Stock: 120, Active: true},
			{ID: 2, Name: "Agua Natural 1L", SKU: "AG-1L", Category: "Bebidas", Price: price("15.50"), Stock: 300, Active: true},
			{ID: 3, Name: "Galletas Surtidas 500g", SKU: "GA-SUR-500", Category: "Botanas", Price: price("38.90"), Stock: 60, Active: true},
			{ID: 4, Name: "Papas Sal 45g", SKU: "PA-SAL-45", Category: "Botanas", Price: price("17.00"), Stock: 10, Active: true},
			{ID: 5, Name: "Leche Entera 1L", SKU: "LE-ENT-1L", Category: "Lácteos", Price: price("27.50"), Stock: 0, Active: true},
			{ID: 6, Name: "Jugo Naranja 1L", SKU: "JU-NAR-1L", Category: "Bebidas", Price: price("32.00"), Stock: 40, Active: false},
		},
	}
}
