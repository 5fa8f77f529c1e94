package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/storage"
)

var ErrLicenseNotFound = errors.New("driver license not found")

type LicenseValidator interface {
	DriverLicense(license domain.DriverLicense) error
}

type ProfileUseCase interface {
	SaveDriverLicense(ctx context.Context, license domain.DriverLicense) error
	DriverLicense(ctx context.Context) (*domain.DriverLicense, error)
}

type Store struct {
	kv        storage.KeyValue
	validator LicenseValidator
}

func NewStore(kv storage.KeyValue, validator LicenseValidator) *Store {
	return &Store{kv: kv, validator: validator}
}

// SaveDriverLicense validates the form before writing it. Validation failures
// are returned unwrapped.
func (s *Store) SaveDriverLicense(ctx context.Context, license domain.DriverLicense) error {
	if err := s.validator.DriverLicense(license); err != nil {
		return err
	}
	payload, err := json.Marshal(license)
	if err != nil {
		return fmt.Errorf("encode driver license: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyDriverLicense, string(payload)); err != nil {
		return fmt.Errorf("save driver license: %w", err)
	}
	return nil
}

// DriverLicense treats a malformed stored value as missing.
func (s *Store) DriverLicense(ctx context.Context) (*domain.DriverLicense, error) {
	raw, err := s.kv.Get(ctx, storage.KeyDriverLicense)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, fmt.Errorf("load driver license: %w", err)
	}

	var license domain.DriverLicense
	if err := json.Unmarshal([]byte(raw), &license); err != nil {
		return nil, ErrLicenseNotFound
	}
	return &license, nil
}

var _ ProfileUseCase = (*Store)(nil)
