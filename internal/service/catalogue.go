package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/carrentapp/carrent/internal/catalogue"
	"github.com/carrentapp/carrent/internal/models"
)

// VehicleGateway defines the vehicle reads required from the rental API.
type VehicleGateway interface {
	AvailableVehicles(ctx context.Context) ([]models.Vehicle, error)
	VehicleByID(ctx context.Context, id int64) (*models.Vehicle, error)
}

// CatalogueService fetches the fleet and derives the filtered view.
type CatalogueService struct {
	gw  VehicleGateway
	log *zap.Logger
}

// NewCatalogueService constructs a CatalogueService.
func NewCatalogueService(gw VehicleGateway, log *zap.Logger) *CatalogueService {
	return &CatalogueService{gw: gw, log: log}
}

// CatalogueView is the rendered catalogue state: the filtered vehicles plus
// the dropdown values derived from the full fleet.
type CatalogueView struct {
	Vehicles []catalogue.Result `json:"vehicles"`
	Count    int                `json:"count"`
	Brands   []string           `json:"brands"`
	Cities   []string           `json:"cities"`
}

// Browse fetches the fleet once and applies the filter spec.
func (s *CatalogueService) Browse(ctx context.Context, spec models.FilterSpec) (*CatalogueView, error) {
	fleet, err := s.gw.AvailableVehicles(ctx)
	if err != nil {
		return nil, err
	}

	filtered := catalogue.Apply(fleet, spec)
	s.log.Debug("catalogue filtered",
		zap.Int("fleet", len(fleet)),
		zap.Int("shown", len(filtered)))

	return &CatalogueView{
		Vehicles: filtered,
		Count:    len(filtered),
		Brands:   catalogue.Brands(fleet),
		Cities:   catalogue.Cities(fleet),
	}, nil
}

// Vehicle fetches one listing with its derived city attached.
func (s *CatalogueService) Vehicle(ctx context.Context, id int64) (*catalogue.Result, error) {
	v, err := s.gw.VehicleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &catalogue.Result{Vehicle: *v, City: catalogue.CityFromAddress(v.AgencyAddress)}, nil
}
