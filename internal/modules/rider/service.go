// Rider service: registration validation and approval updates.
package rider

import (
	"context"
	"errors"
	"strings"
)

var ErrBadRequest = errors.New("bad request")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type RegisterCommand struct {
	ID            int64
	Name          string
	PhoneNumber   string
	VehicleNumber string
	HomeAddress   string
	WalletAddress *string
	VehicleType   string
	CapacityKg    float64
	Country       string
}

// Register creates a rider with riderStatus Available and approvalStatus
// Pending; uniqueness on id, phone, vehicle number, and wallet is enforced
// by the store.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Rider, error) {
	if cmd.ID <= 0 || cmd.Name == "" || cmd.PhoneNumber == "" || cmd.VehicleNumber == "" ||
		cmd.HomeAddress == "" || cmd.Country == "" {
		return nil, ErrBadRequest
	}
	if cmd.CapacityKg <= 0 {
		return nil, ErrBadRequest
	}
	vt, ok := ParseVehicleType(cmd.VehicleType)
	if !ok {
		return nil, ErrBadRequest
	}
	var wallet *string
	if cmd.WalletAddress != nil && strings.TrimSpace(*cmd.WalletAddress) != "" {
		w := strings.TrimSpace(*cmd.WalletAddress)
		wallet = &w
	}

	r := &Rider{
		ID:             cmd.ID,
		Name:           cmd.Name,
		PhoneNumber:    cmd.PhoneNumber,
		VehicleNumber:  cmd.VehicleNumber,
		HomeAddress:    cmd.HomeAddress,
		WalletAddress:  wallet,
		VehicleType:    vt,
		CapacityKg:     cmd.CapacityKg,
		Country:        cmd.Country,
		RiderStatus:    StatusAvailable,
		ApprovalStatus: ApprovalPending,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Rider, error) {
	return s.store.Get(ctx, id)
}

// UpdateApproval is invoked by the admin-approval workflow; it never touches
// riderStatus.
func (s *Service) UpdateApproval(ctx context.Context, id int64, approval string) (ApprovalStatus, error) {
	st, ok := ParseApprovalStatus(approval)
	if !ok {
		return "", ErrBadRequest
	}
	if err := s.store.SetApproval(ctx, id, st); err != nil {
		return "", err
	}
	return st, nil
}
