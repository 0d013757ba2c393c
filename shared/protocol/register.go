package protocol

import (
	"fmt"

	"github.com/automoto/doomerang-tracer/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetIdentity uint = 10
	SyncIDNetPose     uint = 11
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPose uint8 = 11
)

// Version is compared by the server against JoinRequest.Version
const Version = "tracer/1"

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	// Identity is discrete; no interpolation
	if err := esync.RegisterComponent(
		SyncIDNetIdentity,
		netcomponents.NetIdentityData{},
		netcomponents.NetIdentity,
	); err != nil {
		return fmt.Errorf("register identity: %w", err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetPose,
		netcomponents.NetPoseData{},
		netcomponents.NetPose,
		esync.WithInterpFn(InterpIDNetPose, netcomponents.LerpNetPose),
	); err != nil {
		return fmt.Errorf("register pose: %w", err)
	}

	return nil
}
