package netcomponents

import (
	"math"
	"testing"
)

func TestLerpNetPose(t *testing.T) {
	from := NetPoseData{X: 0, Y: 0, Z: 0, Yaw: 0, AvatarKey: 1}
	to := NetPoseData{X: 2, Y: 4, Z: -6, Yaw: 1, AvatarKey: 2}

	mid := LerpNetPose(from, to, 0.5)
	if mid.X != 1 || mid.Y != 2 || mid.Z != -3 {
		t.Fatalf("unexpected position %+v", mid)
	}
	if math.Abs(mid.Yaw-0.5) > 1e-9 {
		t.Fatalf("yaw = %v, want 0.5", mid.Yaw)
	}
	if mid.AvatarKey != 2 {
		t.Fatalf("avatar key should snap to the target")
	}
}

func TestLerpNetPoseWrapsYaw(t *testing.T) {
	from := NetPoseData{Yaw: math.Pi - 0.1}
	to := NetPoseData{Yaw: -math.Pi + 0.1}

	mid := LerpNetPose(from, to, 0.5)
	// Halfway along the short arc is pi, not 0
	if d := math.Abs(math.Remainder(mid.Yaw-math.Pi, 2*math.Pi)); d > 1e-9 {
		t.Fatalf("yaw = %v, want ±pi", mid.Yaw)
	}
}
