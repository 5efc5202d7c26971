package store

import (
	"github.com/goofitre/carcare-api/internal/httperr"
)

// StoreInput carries the editable fields of a store.
type StoreInput struct {
	Name     string
	Phone    string
	Address  string
	ImageURL *string
	Hours    *string
	Lat      *float64
	Lng      *float64
	IsOpen   bool
}

func (in StoreInput) validate() error {
	if (in.Lat == nil) != (in.Lng == nil) {
		return httperr.ErrBusiness("invalid_location")
	}
	if in.Lat != nil && (*in.Lat < -90 || *in.Lat > 90 || *in.Lng < -180 || *in.Lng > 180) {
		return httperr.ErrBusiness("invalid_location")
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
