package client

import "context"

// CatalogService loads autocomplete catalogs.
type CatalogService struct {
	c *Client
}

// servicesResponse wraps the service catalog response.
type servicesResponse struct {
	Services []string `json:"services"`
}

// interfacesResponse wraps the interface catalog response.
type interfacesResponse struct {
	Interfaces []InterfaceInfo `json:"interfaces"`
}

// Services returns the known service names.
func (s *CatalogService) Services(ctx context.Context) ([]string, error) {
	var resp servicesResponse
	if err := s.c.get(ctx, "/api/v1/catalog/services", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}

// Interfaces returns the known network interfaces.
func (s *CatalogService) Interfaces(ctx context.Context) ([]InterfaceInfo, error) {
	var resp interfacesResponse
	if err := s.c.get(ctx, "/api/v1/catalog/interfaces", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Interfaces, nil
}
