package inventory

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"inventory-manager/feature/inventory/asset"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/pipeline"
	"inventory-manager/feature/inventory/store"

	"go.uber.org/zap"
)

// ErrNoPorts is returned when an unmanaged device is registered without a valid MAC.
var ErrNoPorts = errors.New("unmanaged device needs at least one valid MAC address")

// Service handles inventory operations.
type Service struct {
	orchestrator *pipeline.Orchestrator
	store        *store.Store
	logger       *zap.Logger
}

// NewService creates a new inventory service.
func NewService(orchestrator *pipeline.Orchestrator, st *store.Store, logger *zap.Logger) *Service {
	return &Service{
		orchestrator: orchestrator,
		store:        st,
		logger:       logger,
	}
}

// Submit runs one inventory document through the pipeline.
func (s *Service) Submit(ctx context.Context, raw []byte, dryRun bool) (*pipeline.Result, error) {
	return s.orchestrator.Submit(ctx, raw, pipeline.SubmitOptions{DryRun: dryRun})
}

// Agent returns the agent registered for a device, or nil.
func (s *Service) Agent(ctx context.Context, deviceID string) (*models.Agent, error) {
	return s.store.FindAgent(ctx, deviceID)
}

// RegisterUnmanaged records a placeholder device for ports seen on the network
// (e.g. from a switch MAC table) before their owner reports.
func (s *Service) RegisterUnmanaged(ctx context.Context, name string, macs []string) (*models.UnmanagedDevice, error) {
	var ports []*models.NetworkPort
	seen := make(map[string]struct{})
	for _, raw := range macs {
		hw, err := net.ParseMAC(strings.TrimSpace(raw))
		if err != nil {
			s.logger.Warn("Skipping invalid MAC", zap.String("mac", raw), zap.Error(err))
			continue
		}
		mac := strings.ToLower(hw.String())
		if _, dup := seen[mac]; dup {
			continue
		}
		seen[mac] = struct{}{}
		ports = append(ports, &models.NetworkPort{
			Name:              mac,
			MAC:               mac,
			InstantiationType: asset.InstantiationEthernet,
			LogicalNumber:     1,
		})
	}
	if len(ports) == 0 {
		return nil, ErrNoPorts
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	device, err := tx.CreateUnmanaged(ctx, name, ports)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unmanaged device: %w", err)
	}
	return device, nil
}
